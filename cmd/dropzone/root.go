package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/dropzone/internal/config"
	"github.com/aretw0/dropzone/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dropzone",
	Short: "Dropzone is the drag-and-drop interaction core of a visual page builder",
	Long: `Dropzone tracks drag sessions and drop indicators for page builder sessions
and serves the component catalog over HTTP and the Model Context Protocol.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		envFile, _ := cmd.Flags().GetString("env-file")

		var err error
		cfg, err = config.Load(path, envFile)
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", "Path to a YAML config file")
	f.String("env-file", ".env", "Path to a .env file (ignored if missing)")
	f.String("log-level", "", "Log level: debug, info, warn, error")
	f.String("store", "", "Session store backend: memory, file, redis or sqlite")
	f.String("store-dir", "", "Directory of the file session store")
	f.String("sqlite-path", "", "Database file for the sqlite session store")
	f.String("redis-addr", "", "Redis address for the redis session store")
	f.String("catalog", "", "YAML or JSON file extending the built-in component catalog")
}

// applyFlags overrides cfg with flags set on the command line.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	str := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	str("log-level", &c.LogLevel)
	str("store", &c.Store.Backend)
	str("store-dir", &c.Store.Dir)
	str("sqlite-path", &c.Store.SQLitePath)
	str("redis-addr", &c.Store.Redis.Addr)
	str("catalog", &c.Catalog)
	str("listen", &c.Listen)
	str("metrics-listen", &c.MetricsListen)
	str("base-url", &c.BaseURL)
}
