package main

import (
	"fmt"
	"os"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/graph"
	"github.com/enola-dev/enola-sub007/metric"
	"github.com/enola-dev/enola-sub007/pipeline"
	"github.com/spf13/cobra"
)

func newRDFCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdf",
		Short: "Convert between N-Quads and Thing documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "to-things <file.nq>",
		Short: "Print every root subject of an N-Quads file as a Thing document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.WrapInvalid(err, "enola", "rdf", "open "+args[0])
			}
			defer f.Close()

			quads, err := graph.ReadNQuads(f)
			if err != nil {
				return err
			}
			repo, err := a.datatypes()
			if err != nil {
				return err
			}
			started := time.Now()
			things, err := graph.NewCodec(repo).DecodeAll(quads)
			a.registry.CoreMetrics().RecordConversion("rdf", metric.DirectionDecode, started, err)
			if err != nil {
				return err
			}
			a.logger.Info("decoded graph", "quads", len(quads), "things", len(things))
			return a.writeThings(things)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "from-things <file>...",
		Short: "Print Thing documents as N-Quads",
		Long: "Reads the documents concurrently with the configured pipeline and\n" +
			"writes one N-Quads graph holding all of them. Unreadable documents are\n" +
			"reported, and with pipeline.policy \"abort\" stop the command.\n",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.pipelineOptions(metric.DirectionDecode)
			if err != nil {
				return err
			}
			report, err := pipeline.NewBatch("documents", readDocument, opts...).Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			repo, err := a.datatypes()
			if err != nil {
				return err
			}
			started := time.Now()
			quads, err := graph.NewCodec(repo).EncodeAll(report.Things)
			a.registry.CoreMetrics().RecordConversion("rdf", metric.DirectionEncode, started, err)
			if err != nil {
				return err
			}
			if err := graph.WriteNQuads(a.out, quads); err != nil {
				return err
			}
			return failuresError(args, report.Failures)
		},
	})
	return cmd
}

// failuresError names the first skipped input, or is nil when none was.
func failuresError(inputs []string, failures []pipeline.Failure) error {
	if len(failures) == 0 {
		return nil
	}
	f := failures[0]
	return fmt.Errorf("%d of %d inputs failed, first %s: %w", len(failures), len(inputs), inputs[f.Index], f.Err)
}
