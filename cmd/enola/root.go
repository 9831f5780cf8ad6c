package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/enola-dev/enola-sub007/config"
	"github.com/enola-dev/enola-sub007/datatype"
	"github.com/enola-dev/enola-sub007/document"
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/kind"
	"github.com/enola-dev/enola-sub007/metric"
	"github.com/enola-dev/enola-sub007/pipeline"
	"github.com/enola-dev/enola-sub007/pkg/cache"
	"github.com/enola-dev/enola-sub007/store"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one invocation.
type app struct {
	flags  cliFlags
	out    io.Writer
	errOut io.Writer

	logger   *slog.Logger
	cfg      *config.Config
	registry *metric.MetricsRegistry
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert and store Things",
		Long: "enola converts Things, property graphs keyed by IRI, between protobuf\n" +
			"messages, RDF N-Quads and YAML or JSON documents.\n",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.flags.Metrics {
				return nil
			}
			return a.registry.WriteText(a.errOut, "enola_")
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.CompletionOptions.DisableDefaultCmd = true
	bindFlags(cmd, &a.flags)

	cmd.AddCommand(
		newDatatypeCommand(a),
		newRouteCommand(a),
		newExpandCommand(a),
		newProtoCommand(a),
		newRDFCommand(a),
		newStoreCommand(a),
		newCheckCommand(a),
	)
	return cmd
}

// setup validates flags, builds the logger and loads the configuration:
// defaults, then the --config file, then ENOLA_* variables.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := validateFlags(&a.flags); err != nil {
		return err
	}
	a.logger = setupLogger(a.flags.LogLevel, a.flags.LogFormat, a.errOut)
	slog.SetDefault(a.logger)

	loader := config.NewLoader()
	loader.EnableValidation(true)
	if a.flags.ConfigPath != "" {
		loader.AddLayer(a.flags.ConfigPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.registry = metric.NewMetricsRegistry()

	a.logger.Debug("configuration loaded",
		"command", cmd.CommandPath(),
		"config_path", a.flags.ConfigPath,
		"store", cfg.Store.Backend)
	return nil
}

func (a *app) format() document.Format {
	return document.Format(a.flags.Output)
}

func (a *app) datatypes() (*datatype.Repository, error) {
	return a.cfg.Datatypes.Repository()
}

// resolver loads the configured kinds catalog behind the configured cache.
func (a *app) resolver() (*kind.Resolver, error) {
	if a.cfg.Catalog.Path == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "enola", "resolver", "catalog.path is not set")
	}
	catalog, err := kind.LoadCatalog(a.cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	c, err := cache.NewFromConfig(a.cfg.Cache, cache.WithMetrics[kind.Resolution](a.registry, "kinds"))
	if err != nil {
		return nil, err
	}
	return kind.NewResolver(catalog, kind.WithCache(c), kind.WithLogger(a.logger))
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, a.cfg.Store, a.registry.CoreMetrics(), a.logger)
}

func (a *app) pipelineOptions(direction string) ([]pipeline.Option, error) {
	opts, err := a.cfg.Pipeline.Options()
	if err != nil {
		return nil, err
	}
	return append(opts,
		pipeline.WithMetrics(a.registry),
		pipeline.WithLogger(a.logger),
		pipeline.WithDirection(direction),
	), nil
}

// writeThings writes documents in the output format, YAML ones separated
// by document markers.
func (a *app) writeThings(things []thing.Thing) error {
	for i, t := range things {
		if i > 0 && a.format() == document.YAML {
			if _, err := io.WriteString(a.out, "---\n"); err != nil {
				return err
			}
		}
		if err := document.Write(a.out, a.format(), t); err != nil {
			return err
		}
	}
	return nil
}

// readDocument is the pipeline converter for document files.
func readDocument(_ context.Context, path string) (thing.Thing, error) {
	f, err := os.Open(path)
	if err != nil {
		return thing.Thing{}, errors.WrapInvalid(err, "enola", "readDocument", "open "+path)
	}
	defer f.Close()
	return document.Read(f)
}
