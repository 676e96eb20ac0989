package presence

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Notifier tells the user how an action ended.
type Notifier interface {
	Notify(ctx context.Context, outcome Outcome)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, outcome Outcome)

func (f NotifierFunc) Notify(ctx context.Context, outcome Outcome) {
	f(ctx, outcome)
}

// WriterNotifier prints one line per outcome.
type WriterNotifier struct {
	w io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, outcome Outcome) {
	var prefix string
	switch outcome.Kind {
	case OutcomeSuccess:
		prefix = "✓"
	case OutcomeBusy:
		prefix = "…"
	default:
		prefix = "✗"
	}
	msg := outcome.Message
	if msg == "" && outcome.Kind == OutcomeSuccess {
		msg = "Opération réussie"
	}
	fmt.Fprintf(n.w, "%s %s\n", prefix, msg)
}

// LogNotifier records outcomes through slog.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, outcome Outcome) {
	level := slog.LevelInfo
	if outcome.Kind != OutcomeSuccess {
		level = slog.LevelWarn
	}
	attrs := []any{
		"kind", outcome.Kind.String(),
		"action", outcome.Action,
		"record_id", outcome.RecordID,
	}
	if outcome.Err != nil {
		attrs = append(attrs, "error", outcome.Err)
	}
	n.logger.Log(ctx, level, outcome.Message, attrs...)
}

// MultiNotifier fans an outcome out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, outcome Outcome) {
	for _, n := range m {
		n.Notify(ctx, outcome)
	}
}
