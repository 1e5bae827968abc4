package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/logsift/internal/app"
	"github.com/five82/logsift/internal/logfilter"
	"github.com/five82/logsift/internal/logging"
	"github.com/five82/logsift/internal/query"
)

type queryFlags struct {
	filter string
	level  string
	start  string
	end    string
	json   bool
}

func (c *cli) newQueryCmd(use, short string, folder bool) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, query.Query{
				Source: args[0],
				Folder: folder,
				Text:   f.filter,
				Level:  f.level,
				Start:  f.start,
				End:    f.end,
			}, f.json)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.filter, "filter", "f", "", "keep lines containing this text")
	flags.StringVarP(&f.level, "level", "l", string(logfilter.LevelAll), "keep lines at this level: "+levelNames())
	flags.StringVar(&f.start, "start", "", "range start, RFC 3339 (ignored without --end)")
	flags.StringVar(&f.end, "end", "", "range end, RFC 3339 (ignored without --start)")
	flags.BoolVar(&f.json, "json", false, "print the result as a JSON object")
	return cmd
}

func (c *cli) runQuery(cmd *cobra.Command, q query.Query, asJSON bool) error {
	engine, err := app.NewEngine(c.cfg, logging.Component(c.logger, "query"))
	if err != nil {
		return err
	}
	res, err := engine.Run(q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		if res.Lines == nil {
			res.Lines = []string{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	for _, line := range res.Lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	if res.Truncated {
		c.logger.Warn().Int("lines", len(res.Lines)).Msg("result cap reached; narrow the query to see more")
	}
	return nil
}

func levelNames() string {
	names := []string{string(logfilter.LevelAll)}
	for _, l := range logfilter.Levels {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
