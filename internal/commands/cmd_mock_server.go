package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/adminctl/internal/mockserver"
	"github.com/colonyops/adminctl/internal/printer"
)

type MockServerCmd struct {
	flags *Flags

	// flags
	port    int
	noSeed  bool
	latency time.Duration
}

// NewMockServerCmd creates a new mock-server command
func NewMockServerCmd(flags *Flags) *MockServerCmd {
	return &MockServerCmd{flags: flags}
}

// Register adds the mock-server command to the application
func (cmd *MockServerCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "mock-server",
		Usage: "Run an in-memory admin API for local development",
		Description: `Serves the admin API from memory with demo modules, settings and status
messages. Point server.url (or --server) at the printed address.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "port",
				Usage:       "port to listen on",
				Value:       8080,
				Destination: &cmd.port,
			},
			&cli.BoolFlag{
				Name:        "no-seed",
				Usage:       "start with an empty backend",
				Destination: &cmd.noSeed,
			},
			&cli.DurationFlag{
				Name:        "latency",
				Usage:       "delay every response, to exercise loading states",
				Destination: &cmd.latency,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *MockServerCmd) run(ctx context.Context, c *cli.Command) error {
	srv := mockserver.New(mockserver.Options{
		Port:    cmd.port,
		Seed:    !cmd.noSeed,
		Latency: cmd.latency,
	})

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start mock server: %w", err)
	}

	p := printer.New(c.Root().Writer)
	p.Successf("mock admin API listening on http://%s", srv.Addr())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
