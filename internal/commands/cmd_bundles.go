package commands

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/printer"
	"github.com/colonyops/adminctl/pkg/iojson"
)

type BundlesCmd struct {
	flags *Flags

	// flags
	match      string
	jsonOutput bool
	yes        bool
	start      bool
}

// NewBundlesCmd creates a new bundles command
func NewBundlesCmd(flags *Flags) *BundlesCmd {
	return &BundlesCmd{flags: flags}
}

// Register adds the bundles command to the application
func (cmd *BundlesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "bundles",
		Aliases: []string{"b"},
		Usage:   "Inspect and manage installed modules",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List installed modules",
				UsageText: "adminctl bundles ls [--match pattern] [--json]",
				Description: `Lists modules with their id, version and lifecycle state.

--match filters by symbolic name or name using glob patterns, for example
'org.platform.*' or '*mail*'.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "match",
						Aliases:     []string{"m"},
						Usage:       "glob pattern matched against symbolic name and name",
						Destination: &cmd.match,
					},
					jsonFlag(&cmd.jsonOutput),
				},
				Action: cmd.runList,
			},
			{
				Name:      "show",
				Usage:     "Show a single module",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{jsonFlag(&cmd.jsonOutput)},
				Action:    cmd.runShow,
			},
			{
				Name:      "start",
				Usage:     "Start a module",
				ArgsUsage: "<id>",
				Action:    cmd.runAction("start"),
			},
			{
				Name:      "stop",
				Usage:     "Stop a module",
				ArgsUsage: "<id>",
				Action:    cmd.runAction("stop"),
			},
			{
				Name:      "restart",
				Usage:     "Restart a module",
				ArgsUsage: "<id>",
				Action:    cmd.runAction("restart"),
			},
			{
				Name:      "uninstall",
				Usage:     "Uninstall a module",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runUninstall,
			},
			{
				Name:      "upload",
				Usage:     "Upload and install a module file",
				ArgsUsage: "[path]",
				Description: `Uploads a module file. Without a path argument the path is asked for
interactively.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "start",
						Usage:       "start the module after installing it",
						Destination: &cmd.start,
					},
				},
				Action: cmd.runUpload,
			},
		},
	})

	return app
}

// controller builds a bundle controller that prints alerts to the command
// output.
func (cmd *BundlesCmd) controller(c *cli.Command) (*bundle.Controller, *printer.Printer, error) {
	api, err := cmd.flags.Client()
	if err != nil {
		return nil, nil, err
	}
	p := printer.New(c.Root().Writer)
	return bundle.NewController(api, p.Alerts(cmd.flags.Catalog), api, cmd.flags.Catalog), p, nil
}

func (cmd *BundlesCmd) runList(ctx context.Context, c *cli.Command) error {
	if !bundle.ValidPattern(cmd.match) {
		return fmt.Errorf("invalid --match pattern %q", cmd.match)
	}

	ctrl, _, err := cmd.controller(c)
	if err != nil {
		return err
	}
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	bundles := ctrl.Bundles(cmd.match)
	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.Write(out, bundles)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSYMBOLIC NAME\tVERSION\tSTATE")
	for _, b := range bundles {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.DisplayName(), b.SymbolicName, b.Version, cmd.stateLabel(b.State))
	}
	return w.Flush()
}

func (cmd *BundlesCmd) runShow(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctrl, p, err := cmd.controller(c)
	if err != nil {
		return err
	}

	b, err := ctrl.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.Write(c.Root().Writer, b)
	}

	p.Headerf("%s", b.DisplayName())
	p.Printf("  id:            %d", b.ID)
	p.Printf("  symbolic name: %s", b.SymbolicName)
	p.Printf("  version:       %s", b.Version)
	p.Printf("  state:         %s", cmd.stateLabel(b.State))
	if b.Location != "" {
		p.Printf("  location:      %s", b.Location)
	}
	return nil
}

func (cmd *BundlesCmd) runAction(action string) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		ctrl, p, err := cmd.controller(c)
		if err != nil {
			return err
		}
		if err := ctrl.Load(ctx); err != nil {
			return err
		}

		switch action {
		case "start":
			err = ctrl.Start(ctx, id)
		case "stop":
			err = ctrl.Stop(ctx, id)
		case "restart":
			err = ctrl.Restart(ctx, id)
		}
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		b, _ := ctrl.Find(id)
		p.Successf("%s: %s", b.DisplayName(), cmd.stateLabel(b.State))
		return nil
	}
}

func (cmd *BundlesCmd) runUninstall(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctrl, p, err := cmd.controller(c)
	if err != nil {
		return err
	}
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	b, ok := ctrl.Find(id)
	if !ok {
		return fmt.Errorf("bundle %d: %w", id, bundle.ErrNotFound)
	}

	if err := ctrl.Uninstall(ctx, id, confirmPrompt(cmd.yes)); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if _, still := ctrl.Find(id); still {
		p.Infof("Uninstall of %s cancelled", b.DisplayName())
		return nil
	}

	p.Successf("Uninstalled %s", b.DisplayName())
	return nil
}

func (cmd *BundlesCmd) runUpload(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		var err error
		path, err = promptPath(ctx, cmd.flags.Catalog.Message("bundles.upload.title"))
		if err != nil {
			return err
		}
	}

	ctrl, p, err := cmd.controller(c)
	if err != nil {
		return err
	}

	b, err := ctrl.Upload(ctx, path, cmd.start)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	p.Successf("%s: %s (%d, %s)", cmd.flags.Catalog.Message("bundles.uploaded"), b.DisplayName(), b.ID, cmd.stateLabel(b.State))
	return nil
}

func (cmd *BundlesCmd) stateLabel(s bundle.State) string {
	return cmd.flags.Catalog.Message("bundles.state." + string(s))
}

func parseID(c *cli.Command) (int64, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing bundle id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid bundle id %q", raw)
	}
	return id, nil
}

func jsonFlag(dest *bool) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: dest,
	}
}
