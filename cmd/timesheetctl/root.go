package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/app"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand of one process.
type cli struct {
	cfg      *config.Config
	services *app.Services
	cleanup  func()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timesheetctl",
		Short: "Operator tooling for the timesheet backend",
		Long: `timesheetctl runs schema migrations and administrative actions
(employee registry, leave allocations) against the configured storage.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.migrateCmd())
	root.AddCommand(c.employeeCmd())
	root.AddCommand(c.balanceCmd())
	root.AddCommand(c.tokenCmd())
	return root
}

func (c *cli) config() (*config.Config, error) {
	if c.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		c.cfg = cfg
	}
	return c.cfg, nil
}

func (c *cli) servicesFor(ctx context.Context) (*app.Services, error) {
	if c.services != nil {
		return c.services, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	services, cleanup, err := app.Build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.services, c.cleanup = services, cleanup
	return services, nil
}

func (c *cli) close() {
	if c.cleanup != nil {
		c.cleanup()
		c.cleanup = nil
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
