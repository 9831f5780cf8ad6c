package main

import (
	"context"
	"fmt"
	"time"

	"github.com/enola-dev/enola-sub007/metric"
	"github.com/enola-dev/enola-sub007/pipeline"
	"github.com/enola-dev/enola-sub007/store"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/spf13/cobra"
)

func newStoreCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Put, get and list Things in the configured store",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "put <file>...",
			Short: "Store Thing documents",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd.Context(), func(ctx context.Context, s store.Store) error {
					return a.putDocuments(ctx, s, args)
				})
			},
		},
		&cobra.Command{
			Use:   "get <iri>...",
			Short: "Print stored Things",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd.Context(), func(ctx context.Context, s store.Store) error {
					things := make([]thing.Thing, 0, len(args))
					for _, iri := range args {
						t, err := s.Get(ctx, iri)
						if err != nil {
							return err
						}
						things = append(things, t)
					}
					return a.writeThings(things)
				})
			},
		},
		&cobra.Command{
			Use:   "list [prefix]",
			Short: "Print the IRIs of stored Things",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				prefix := ""
				if len(args) == 1 {
					prefix = args[0]
				}
				return a.withStore(cmd.Context(), func(ctx context.Context, s store.Store) error {
					iris, err := s.List(ctx, prefix)
					if err != nil {
						return err
					}
					for _, iri := range iris {
						if _, err := fmt.Fprintln(a.out, iri); err != nil {
							return err
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <iri>...",
			Short: "Remove Things",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd.Context(), func(ctx context.Context, s store.Store) error {
					for _, iri := range args {
						if err := s.Delete(ctx, iri); err != nil {
							return err
						}
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) withStore(ctx context.Context, fn func(context.Context, store.Store) error) error {
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.Warn("closing store failed", "error", err)
		}
	}()
	return fn(ctx, s)
}

// putDocuments streams the files through an Ingester.
func (a *app) putDocuments(ctx context.Context, s store.Store, paths []string) error {
	opts, err := a.pipelineOptions(metric.DirectionDecode)
	if err != nil {
		return err
	}
	ingester := pipeline.NewIngester("store", readDocument, s, opts...)
	defer func() {
		if err := ingester.Close(time.Minute); err != nil {
			a.logger.Warn("stopping ingest workers failed", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	inputs := make(chan string)
	go func() {
		defer close(inputs)
		for _, p := range paths {
			select {
			case inputs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	report, err := ingester.Ingest(ctx, inputs)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(a.out, "stored %d\n", report.Stored); err != nil {
		return err
	}
	return failuresError(paths, report.Failures)
}
