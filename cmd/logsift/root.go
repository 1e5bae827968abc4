package main

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/logsift/internal/config"
	"github.com/five82/logsift/internal/logging"
)

// cli carries state resolved once by the root command for its subcommands.
type cli struct {
	v      *viper.Viper
	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "logsift",
		Short: "Query the tail of log files by text, level and time range",
		Long: `logsift reads the last window of a log file, or the newest log file in a
folder, and returns the lines that match a text filter, a severity level and
an optional time range.

  logsift query /var/log/app.log --level Error
  logsift folder /var/log/app --filter timeout --start 2024-01-01T10:00:00+08:00 --end 2024-01-01T11:00:00+08:00
  logsift serve --addr 127.0.0.1:7488
  logsift view --remote 10.0.0.5:7488`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.view(cmd, viewFlags{})
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default "+config.DefaultPath()+")")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.Bool("log-json", false, "write logs as JSON")
	_ = c.v.BindPFlag("config", flags.Lookup("config"))
	_ = c.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log_json", flags.Lookup("log-json"))

	root.AddCommand(
		c.newQueryCmd("query PATH", "Filter the tail of one log file", false),
		c.newQueryCmd("folder DIR", "Filter the tail of the newest log file in a folder", true),
		c.newServeCmd(),
		c.newViewCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	// LOGSIFT_CONFIG, LOGSIFT_LOG_LEVEL and LOGSIFT_LOG_JSON override defaults.
	c.v.SetEnvPrefix("LOGSIFT")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.logger = logging.New(logging.Options{
		Level: c.v.GetString("log_level"),
		JSON:  c.v.GetBool("log_json"),
		Out:   cmd.ErrOrStderr(),
	})

	cfg, err := config.Load(c.v.GetString("config"))
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger.Debug().
		Str("format", cfg.Format).
		Str("utc_offset", cfg.UTCOffset).
		Int64("window_bytes", cfg.WindowBytes).
		Int("max_results", cfg.MaxResults).
		Msg("config loaded")
	return nil
}
