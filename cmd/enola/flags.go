package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/enola-dev/enola-sub007/document"
	"github.com/spf13/cobra"
)

// cliFlags holds the global flags.
type cliFlags struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Output     string
	Metrics    bool
}

// bindFlags registers the global flags with environment fallbacks.
func bindFlags(cmd *cobra.Command, f *cliFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.ConfigPath, "config", "c",
		getEnv("ENOLA_CONFIG", ""),
		"Path to a JSON configuration file (env: ENOLA_CONFIG)")
	pf.StringVar(&f.LogLevel, "log-level",
		getEnv("ENOLA_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn, error (env: ENOLA_LOG_LEVEL)")
	pf.StringVar(&f.LogFormat, "log-format",
		getEnv("ENOLA_LOG_FORMAT", "text"),
		"Log format: json, text (env: ENOLA_LOG_FORMAT)")
	pf.StringVarP(&f.Output, "output", "o",
		getEnv("ENOLA_OUTPUT", string(document.YAML)),
		"Document format: yaml, json (env: ENOLA_OUTPUT)")
	pf.BoolVar(&f.Metrics, "metrics",
		getEnvBool("ENOLA_METRICS", false),
		"Print enola_* metrics to stderr on exit (env: ENOLA_METRICS)")
}

func validateFlags(f *cliFlags) error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, f.LogLevel) {
		return fmt.Errorf("invalid log level: %s", f.LogLevel)
	}
	if !slices.Contains([]string{"json", "text"}, f.LogFormat) {
		return fmt.Errorf("invalid log format: %s", f.LogFormat)
	}
	if !slices.Contains([]string{string(document.YAML), string(document.JSON)}, f.Output) {
		return fmt.Errorf("invalid output format: %s", f.Output)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
