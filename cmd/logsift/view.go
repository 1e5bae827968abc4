package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/logsift/internal/app"
)

type viewFlags struct {
	source string
	folder bool
	remote string
	prefs  string
}

func (c *cli) newViewCmd() *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "view [PATH]",
		Short: "Browse query results in the terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.source = args[0]
			}
			return c.view(cmd, f)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&f.folder, "folder", false, "treat PATH as a folder and read its newest log file")
	flags.StringVar(&f.remote, "remote", "", "host:port of a logsift server to query instead of local files")
	flags.StringVar(&f.prefs, "prefs", "", "viewer preferences file (default ~/.config/logsift/prefs.toml)")
	return cmd
}

func (c *cli) view(cmd *cobra.Command, f viewFlags) error {
	return app.Run(cmd.Context(), app.Options{
		ConfigPath: c.v.GetString("config"),
		PrefsPath:  f.prefs,
		Source:     f.source,
		Folder:     f.folder,
		Remote:     f.remote,
	})
}
