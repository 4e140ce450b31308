package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	Prefix string
}

// NewLogger builds a leveled charmbracelet logger writing to w.
func NewLogger(w io.Writer, opts LoggerOptions) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	formatter := log.TextFormatter
	switch strings.ToLower(opts.Format) {
	case "", "text":
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
		Prefix:          opts.Prefix,
	}), nil
}
