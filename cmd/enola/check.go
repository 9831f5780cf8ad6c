package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/enola-dev/enola-sub007/health"
	"github.com/enola-dev/enola-sub007/kind"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the configured datatypes, catalog and store are usable",
		Long: "Prints a health report as JSON and fails when any part is unhealthy.\n" +
			"A store that cannot be reached right now is reported as degraded.\n",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := health.NewMonitor()
			m.Run(cmd.Context(), timeout, a.checks())
			status := m.AggregateHealth(appName)

			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(status); err != nil {
				return err
			}
			if status.IsUnhealthy() {
				return fmt.Errorf("%s", status.Message)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Time allowed for each check")
	return cmd
}

func (a *app) checks() map[string]health.Check {
	return map[string]health.Check{
		"datatypes": func(context.Context) (string, error) {
			repo, err := a.datatypes()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d datatypes", repo.Len()), nil
		},
		"catalog": func(context.Context) (string, error) {
			if a.cfg.Catalog.Path == "" {
				return "no catalog configured", nil
			}
			c, err := kind.LoadCatalog(a.cfg.Catalog.Path)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d kinds", c.Len()), nil
		},
		"store": func(ctx context.Context) (string, error) {
			s, err := a.openStore(ctx)
			if err != nil {
				return "", err
			}
			defer s.Close()
			iris, err := s.List(ctx, "")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s backend, %d things", a.cfg.Store.Backend, len(iris)), nil
		},
	}
}
