// Package logs builds the structured loggers used by the commands.
package logs

import (
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options defines where log records go.
type Options struct {
	Level   slog.Leveler // Minimum level for every handler.
	Stderr  io.Writer    // Human readable text. Nil disables it.
	Trace   io.Writer    // JSON records, one per line. Nil disables it.
	Journal bool         // Also send records to the systemd journal.
}

// New creates a logger writing to every destination named in opt.
// A journal which cannot be reached is reported through the remaining
// handlers and otherwise ignored.
func New(opt Options) *slog.Logger {
	var handlers []slog.Handler

	hopt := &slog.HandlerOptions{Level: opt.Level}

	if opt.Stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(opt.Stderr, hopt))
	}

	if opt.Trace != nil {
		handlers = append(handlers, slog.NewJSONHandler(opt.Trace, hopt))
	}

	var journalErr error
	if opt.Journal {
		h, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: opt.Level,
			ReplaceGroup: func(key string) string {
				return journalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = journalKey(a.Key)
				return a
			},
		})
		if err != nil {
			journalErr = err
		} else {
			handlers = append(handlers, h)
		}
	}

	log := slog.New(slogmulti.Fanout(handlers...))
	if journalErr != nil {
		log.Warn("systemd journal unavailable", "error", journalErr)
	}
	return log
}

// ParseLevel returns the level with the given name.
// Unknown names yield slog.LevelInfo.
func ParseLevel(name string) slog.Level {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return lv
}

// journalKey converts key into the form journald accepts for field names.
func journalKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(key))
}
