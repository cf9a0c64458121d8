package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Alerter delivers error records to an out-of-band channel.
type Alerter interface {
	SendAlert(msg string) error
}

type TelegramHandler struct {
	slog.Handler
	tg    Alerter
	attrs []slog.Attr
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError && h.tg != nil {
		if err := h.tg.SendAlert(alertText(r, h.attrs)); err != nil {
			// Пишем напрямую в stderr, чтобы не уйти в рекурсию через этот же хендлер
			os.Stderr.WriteString("Failed to send telegram alert: " + err.Error() + "\n")
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TelegramHandler{
		Handler: h.Handler.WithAttrs(attrs),
		tg:      h.tg,
		attrs:   merged,
	}
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	return &TelegramHandler{
		Handler: h.Handler.WithGroup(name),
		tg:      h.tg,
		attrs:   h.attrs,
	}
}

// alertText keeps the message plus the attributes that help to find the request.
func alertText(r slog.Record, attrs []slog.Attr) string {
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		switch a.Key {
		case "error", "request_id", "path", "user_id":
			fmt.Fprintf(&b, "\n%s: %s", a.Key, a.Value.String())
		}
		return true
	}
	for _, a := range attrs {
		write(a)
	}
	r.Attrs(write)
	return b.String()
}

func New(tg Alerter) *slog.Logger {
	return NewWithWriter(os.Stdout, tg)
}

func NewWithWriter(w io.Writer, tg Alerter) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	return slog.New(&TelegramHandler{
		Handler: slog.NewJSONHandler(w, opts),
		tg:      tg,
	})
}

type ctxKey struct{}

func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
