package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/adminctl/internal/client"
	"github.com/colonyops/adminctl/internal/core/settings"
	"github.com/colonyops/adminctl/internal/printer"
	"github.com/colonyops/adminctl/pkg/iojson"
)

type SettingsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	form       bool
	input      iojson.FileReader[map[string]string]
}

// NewSettingsCmd creates a new settings command
func NewSettingsCmd(flags *Flags) *SettingsCmd {
	return &SettingsCmd{flags: flags}
}

// Register adds the settings command to the application
func (cmd *SettingsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "settings",
		Usage: "View and change platform and module settings",
		Commands: []*cli.Command{
			{
				Name:   "platform",
				Usage:  "List platform settings",
				Flags:  []cli.Flag{jsonFlag(&cmd.jsonOutput)},
				Action: cmd.runPlatformList,
				Commands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Change platform settings",
						ArgsUsage: "[key=value ...]",
						Description: `Sets platform settings from key=value arguments, or from a JSON object
read with -f or from stdin when no arguments are given.

Each setting is saved on its own unless --form is given, in which case all
settings are submitted together.`,
						Flags: []cli.Flag{
							cmd.input.Flag(),
							&cli.BoolFlag{
								Name:        "form",
								Usage:       "submit all settings in one form",
								Destination: &cmd.form,
							},
						},
						Action: cmd.runPlatformSet,
					},
				},
			},
			{
				Name:      "module",
				Usage:     "List the settings of a module",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{jsonFlag(&cmd.jsonOutput)},
				Action:    cmd.runModuleList,
				Commands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Change module settings",
						ArgsUsage: "<id> [key=value ...]",
						Flags:     []cli.Flag{cmd.input.Flag()},
						Action:    cmd.runModuleSet,
					},
				},
			},
		},
	})

	return app
}

func (cmd *SettingsCmd) setup(c *cli.Command) (*client.Client, *printer.Printer, error) {
	api, err := cmd.flags.Client()
	if err != nil {
		return nil, nil, err
	}
	return api, printer.New(c.Root().Writer), nil
}

func (cmd *SettingsCmd) runPlatformList(ctx context.Context, c *cli.Command) error {
	api, p, err := cmd.setup(c)
	if err != nil {
		return err
	}

	ctrl := settings.NewPlatformController(api, p.Alerts(cmd.flags.Catalog), api, cmd.flags.Catalog)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.Write(c.Root().Writer, ctrl.Options())
	}
	return cmd.writeOptions(c, ctrl.Options())
}

func (cmd *SettingsCmd) runPlatformSet(ctx context.Context, c *cli.Command) error {
	values, err := cmd.values(c.Args().Slice())
	if err != nil {
		return err
	}

	api, p, err := cmd.setup(c)
	if err != nil {
		return err
	}

	ctrl := settings.NewPlatformController(api, p.Alerts(cmd.flags.Catalog), api, cmd.flags.Catalog)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	keys := slices.Sorted(maps.Keys(values))
	for _, key := range keys {
		if err := ctrl.Set(key, values[key]); err != nil {
			return err
		}
	}

	if cmd.form {
		msg, err := ctrl.SaveAll(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		p.Successf("%s", msg)
		return nil
	}

	var failed int
	for _, key := range keys {
		label := cmd.label(key)
		if err := ctrl.Save(ctx, key); err != nil {
			failed++
			p.Errorf("%s %s: %v", settings.Icon(settings.StateError), label, err)
			continue
		}
		p.Successf("%s = %s", label, values[key])
	}

	if failed > 0 {
		return cli.Exit(cmd.flags.Catalog.Message("platformSettings.error.save"), 1)
	}
	p.Infof("%s", cmd.flags.Catalog.Message("platformSettings.saved"))
	return nil
}

func (cmd *SettingsCmd) runModuleList(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	api, p, err := cmd.setup(c)
	if err != nil {
		return err
	}

	ctrl := settings.NewModuleController(api, api, p.Alerts(cmd.flags.Catalog), api, cmd.flags.Catalog)
	if err := ctrl.Load(ctx, id); err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.Write(c.Root().Writer, ctrl.Options())
	}

	p.Headerf("%s", ctrl.Bundle().DisplayName())
	if !ctrl.ShowSettings() {
		p.Printf("%s", cmd.flags.Catalog.Message("settings.none"))
		return nil
	}
	p.Printf("files: %s", strings.Join(ctrl.Files(), ", "))
	return cmd.writeOptions(c, ctrl.Options())
}

func (cmd *SettingsCmd) runModuleSet(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	values, err := cmd.values(c.Args().Tail())
	if err != nil {
		return err
	}

	api, p, err := cmd.setup(c)
	if err != nil {
		return err
	}

	ctrl := settings.NewModuleController(api, api, p.Alerts(cmd.flags.Catalog), api, cmd.flags.Catalog)
	if err := ctrl.Load(ctx, id); err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(values)) {
		if err := ctrl.Set(key, values[key]); err != nil {
			return err
		}
	}

	msg, err := ctrl.SaveAll(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	p.Successf("%s", msg)
	return nil
}

// values collects key=value arguments, falling back to JSON input when
// there are none.
func (cmd *SettingsCmd) values(args []string) (map[string]string, error) {
	if len(args) == 0 {
		if !cmd.input.Provided() {
			return nil, errors.New("no settings given; pass key=value arguments or JSON with -f")
		}
		values, err := cmd.input.Read()
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, errors.New("no settings given")
		}
		return values, nil
	}

	return parseAssignments(args)
}

func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid setting %q, expected key=value", arg)
		}
		values[key] = value
	}
	return values, nil
}

func (cmd *SettingsCmd) writeOptions(c *cli.Command, opts []settings.Option) error {
	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tLABEL\tTYPE\tVALUE")
	for _, o := range opts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Key, cmd.label(o.Key), o.Type, o.Value)
	}
	return w.Flush()
}

func (cmd *SettingsCmd) label(key string) string {
	if cmd.flags.Catalog.Has("settings." + key) {
		return settings.Label(cmd.flags.Catalog, key)
	}
	return key
}
