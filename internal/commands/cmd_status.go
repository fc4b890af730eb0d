package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/adminctl/internal/core/logging"
	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/internal/core/styles"
	"github.com/colonyops/adminctl/pkg/iojson"
)

type StatusCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	errorsOnly bool
	interval   time.Duration
}

// NewStatusCmd creates a new status command
func NewStatusCmd(flags *Flags) *StatusCmd {
	return &StatusCmd{flags: flags}
}

// Register adds the status command to the application
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "status",
		Usage: "Show backend status messages",
		Commands: []*cli.Command{
			{
				Name:  "ls",
				Usage: "List current status messages",
				Flags: []cli.Flag{
					jsonFlag(&cmd.jsonOutput),
					&cli.BoolFlag{
						Name:        "errors",
						Usage:       "only show error and critical messages",
						Destination: &cmd.errorsOnly,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:  "watch",
				Usage: "Poll status messages until interrupted",
				Description: `Polls the status endpoint and prints the message list whenever the set
of messages changes. The interval defaults to status.poll_interval.`,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:        "interval",
						Usage:       "poll interval",
						Destination: &cmd.interval,
					},
				},
				Action: cmd.runWatch,
			},
		},
	})

	return app
}

func (cmd *StatusCmd) runList(ctx context.Context, c *cli.Command) error {
	api, err := cmd.flags.Client()
	if err != nil {
		return err
	}

	msgs, err := api.StatusMessages(ctx)
	if err != nil {
		return err
	}

	if cmd.errorsOnly {
		filtered := msgs[:0]
		for _, m := range msgs {
			if status.IsError(m) {
				filtered = append(filtered, m)
			}
		}
		msgs = filtered
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.Write(out, msgs)
	}

	cmd.writeMessages(out, msgs)
	return nil
}

func (cmd *StatusCmd) runWatch(ctx context.Context, c *cli.Command) error {
	api, err := cmd.flags.Client()
	if err != nil {
		return err
	}

	interval := cmd.interval
	if interval <= 0 {
		interval = cmd.flags.Config.Status.PollInterval
	}

	out := c.Root().Writer
	redraw := isTerminal(out)

	var (
		mu    sync.Mutex
		drawn bool
		done  bool
	)
	draw := func(msgs []status.Message) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		drawn = true
		if redraw {
			_, _ = fmt.Fprint(out, "\x1b[H\x1b[2J")
		} else {
			_, _ = fmt.Fprintln(out, styles.DividerStyle.Render(strings.Repeat("─", 40)))
		}
		_, _ = fmt.Fprintln(out, styles.MutedStyle.Render(time.Now().Format("15:04:05")))
		cmd.writeMessages(out, msgs)
	}

	poller := status.NewPoller(api, status.Options{
		Interval: interval,
		Logger:   logging.Component("status"),
		OnChange: draw,
	})

	poller.Initialize(ctx)

	// A failed first fetch followed by empty results never changes the
	// displayed set, so draw the empty state once here.
	mu.Lock()
	initial := !drawn
	mu.Unlock()
	if initial {
		draw(poller.Displayed())
	}

	<-ctx.Done()
	poller.Stop()

	mu.Lock()
	done = true
	mu.Unlock()
	return nil
}

func (cmd *StatusCmd) writeMessages(out io.Writer, msgs []status.Message) {
	if len(msgs) == 0 {
		_, _ = fmt.Fprintln(out, cmd.flags.Catalog.Message("status.none"))
		return
	}

	for _, m := range msgs {
		level := fmt.Sprintf("%-8s", m.Level)
		switch {
		case status.IsError(m):
			level = styles.LevelErrorStyle.Render(level)
		case m.Level == status.LevelWarn:
			level = styles.LevelWarnStyle.Render(level)
		default:
			level = styles.LevelInfoStyle.Render(level)
		}

		line := fmt.Sprintf("%s %s %s", level, status.ToDate(m).Local().Format("2006-01-02 15:04:05"), m.Text)
		if m.ModuleName != "" {
			line += styles.MutedStyle.Render("  [" + m.ModuleName + "]")
		}
		_, _ = fmt.Fprintln(out, line)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
