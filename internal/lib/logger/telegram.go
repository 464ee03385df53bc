package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type Sender interface {
	SendMessageWithLevel(msg string, level slog.Level)
}

// TelegramHandler passes every record to the wrapped handler and sends a
// plain text copy of records at or above minLevel to Telegram.
type TelegramHandler struct {
	next     slog.Handler
	sender   Sender
	minLevel slog.Level
	attrs    []slog.Attr
	group    string
	async    bool
}

func NewTelegramHandler(next slog.Handler, sender Sender, minLevel slog.Level) *TelegramHandler {
	return &TelegramHandler{
		next:     next,
		sender:   sender,
		minLevel: minLevel,
		async:    true,
	}
}

func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level) || (h.sender != nil && level >= h.minLevel)
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.next.Enabled(ctx, r.Level) {
		err = h.next.Handle(ctx, r)
	}
	if h.sender == nil || r.Level < h.minLevel {
		return err
	}

	msg := h.format(r)
	if h.async {
		go h.sender.SendMessageWithLevel(msg, r.Level)
	} else {
		h.sender.SendMessageWithLevel(msg, r.Level)
	}
	return err
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.next = h.next.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), h.prefixed(attrs)...)
	return &clone
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.next = h.next.WithGroup(name)
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func (h *TelegramHandler) prefixed(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, slog.Attr{Key: h.group + "." + a.Key, Value: a.Value})
	}
	return out
}

func (h *TelegramHandler) format(r slog.Record) string {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteString(": ")
	b.WriteString(r.Message)

	write := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		for _, p := range h.prefixed([]slog.Attr{a}) {
			write(p)
		}
		return true
	})
	return b.String()
}
