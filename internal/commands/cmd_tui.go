package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/logging"
	"github.com/colonyops/adminctl/internal/core/settings"
	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/internal/core/styles"
	"github.com/colonyops/adminctl/internal/profiler"
	"github.com/colonyops/adminctl/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("ADMINCTL_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", profServer.URL()).
			Msg("profiler endpoint available")
	}

	api, err := cmd.flags.Client()
	if err != nil {
		return err
	}

	cfg := cmd.flags.Config
	catalog := cmd.flags.Catalog
	notifications := tui.NewNotificationBuffer(catalog)
	signal := tui.NewStatusSignal()

	poller := status.NewPoller(api, status.Options{
		Interval: cfg.Status.PollInterval,
		Logger:   logging.Component("status"),
		OnChange: signal.OnChange,
	})
	defer poller.Stop()

	m := tui.New(tui.Options{
		Context:       ctx,
		Bundles:       bundle.NewController(api, notifications, api, catalog),
		Platform:      settings.NewPlatformController(api, notifications, api, catalog),
		Module:        settings.NewModuleController(api, api, notifications, api, catalog),
		Poller:        poller,
		Signal:        signal,
		Notifications: notifications,
		Catalog:       catalog,
		Icons:         styles.IconSet(cfg.TUI.Icons),
	})

	log.Info().Str("server", cfg.Server.URL).Msg("starting console")

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
