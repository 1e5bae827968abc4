package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/logsift/internal/logfilter"
	"github.com/five82/logsift/internal/logtail"
)

// DefaultMaxResults caps the number of lines a query returns.
const DefaultMaxResults = 10000

// CapPolicy chooses which matches survive when a query hits MaxResults.
type CapPolicy string

const (
	// CapEarliest keeps the first matches in the window and stops reading.
	CapEarliest CapPolicy = "earliest"
	// CapLatest reads the whole window and keeps the final matches.
	CapLatest CapPolicy = "latest"
)

// ParseCapPolicy resolves a configured policy name. Empty selects CapEarliest.
func ParseCapPolicy(name string) (CapPolicy, error) {
	switch CapPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", CapEarliest:
		return CapEarliest, nil
	case CapLatest:
		return CapLatest, nil
	default:
		return "", fmt.Errorf("unknown cap policy %q", name)
	}
}

// Options tune an Engine. Zero values select the defaults.
type Options struct {
	WindowBytes  int64
	MaxResults   int // zero uses DefaultMaxResults, negative means unlimited
	CapPolicy    CapPolicy
	Format       logfilter.Format
	Zone         *time.Location
	EndInclusive bool
	Logger       *zerolog.Logger
}

// Query is one request. Empty Text, Start and End disable their filters;
// an empty Level or "All" matches any level.
type Query struct {
	Source string
	Folder bool // Source is a directory; read its newest log file
	Text   string
	Level  string
	Start  string
	End    string
}

// Result holds the kept lines in file order.
type Result struct {
	Lines []string `json:"lines"`
	// File is the log file that was read; it differs from Source for folders.
	File   string `json:"file"`
	Offset int64  `json:"offset"`
	// Truncated reports that the result cap was reached.
	Truncated bool `json:"truncated"`
}

// Engine runs queries. It holds only immutable configuration and is safe for
// concurrent use.
type Engine struct {
	window       int64
	maxResults   int
	capPolicy    CapPolicy
	format       logfilter.Format
	zone         *time.Location
	endInclusive bool
	log          zerolog.Logger
}

// New builds an Engine from opts.
func New(opts Options) *Engine {
	e := &Engine{
		window:       opts.WindowBytes,
		maxResults:   opts.MaxResults,
		capPolicy:    opts.CapPolicy,
		format:       opts.Format,
		zone:         opts.Zone,
		endInclusive: opts.EndInclusive,
		log:          zerolog.Nop(),
	}
	if e.window <= 0 {
		e.window = logtail.DefaultWindow
	}
	if e.maxResults == 0 {
		e.maxResults = DefaultMaxResults
	}
	if e.capPolicy == "" {
		e.capPolicy = CapEarliest
	}
	if e.format.Name == "" {
		e.format = logfilter.FormatStandard
	}
	if e.zone == nil {
		e.zone = logfilter.ChinaStandardTime
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	return e
}

// Run executes q. Bounds are validated before any file is touched, and no
// partial result accompanies an error.
func (e *Engine) Run(q Query) (Result, error) {
	criteria, err := e.criteria(q)
	if err != nil {
		return Result{}, err
	}

	path := q.Source
	if strings.TrimSpace(path) == "" {
		return Result{}, &Error{Kind: KindBadInput, Msg: "log path is required"}
	}
	if q.Folder {
		path, err = logtail.SelectLatest(q.Source)
		if err != nil {
			if errors.Is(err, logtail.ErrNoLogFiles) {
				return Result{}, &Error{Kind: KindNotFound, Msg: "no log file found", Err: err}
			}
			return Result{}, &Error{Kind: KindIO, Msg: "cannot read log folder", Err: err}
		}
		e.log.Debug().Str("folder", q.Source).Str("file", path).Msg("selected latest log file")
	}

	tail, err := logtail.OpenTail(path, e.window)
	if err != nil {
		return Result{}, &Error{Kind: KindIO, Msg: "cannot read log file", Err: err}
	}
	defer func() { _ = tail.Close() }()

	col := newCollector(e.maxResults, e.capPolicy)
	scanned := 0
	for tail.Scan() {
		scanned++
		line := tail.Text()
		if !criteria.Keep(line) {
			continue
		}
		if !col.add(line) {
			break
		}
	}
	if err := tail.Err(); err != nil {
		return Result{}, &Error{Kind: KindIO, Msg: "cannot read log file", Err: err}
	}

	res := Result{
		Lines:     col.lines(),
		File:      path,
		Offset:    tail.Offset,
		Truncated: col.truncated(),
	}
	e.log.Debug().
		Str("file", path).
		Int64("offset", tail.Offset).
		Int64("size", tail.Size).
		Int("scanned", scanned).
		Int("kept", len(res.Lines)).
		Bool("truncated", res.Truncated).
		Msg("query complete")
	return res, nil
}

// FetchLogs queries a single log file.
func (e *Engine) FetchLogs(path, filter, level, start, end string) ([]string, error) {
	res, err := e.Run(Query{Source: path, Text: filter, Level: level, Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// FetchFolderLogs queries the most recently modified log file in folder.
func (e *Engine) FetchFolderLogs(folder, filter, level, start, end string) ([]string, error) {
	res, err := e.Run(Query{Source: folder, Folder: true, Text: filter, Level: level, Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

func (e *Engine) criteria(q Query) (logfilter.Criteria, error) {
	start, err := logfilter.ParseBound(q.Start, e.zone)
	if err != nil {
		return logfilter.Criteria{}, &Error{Kind: KindBadInput, Msg: "invalid start time", Err: err}
	}
	end, err := logfilter.ParseBound(q.End, e.zone)
	if err != nil {
		return logfilter.Criteria{}, &Error{Kind: KindBadInput, Msg: "invalid end time", Err: err}
	}
	if (start == nil) != (end == nil) {
		e.log.Debug().Str("start", q.Start).Str("end", q.End).Msg("single time bound ignored")
	}

	level := logfilter.Level(q.Level)
	if level == "" {
		level = logfilter.LevelAll
	}
	return logfilter.Criteria{
		Text:         q.Text,
		Level:        level,
		Start:        start,
		End:          end,
		EndInclusive: e.endInclusive,
		Format:       e.format,
		Zone:         e.zone,
	}, nil
}
