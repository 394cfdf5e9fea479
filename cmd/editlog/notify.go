package main

import (
	"io"
	"log/slog"
)

// notifier prints user notifications to the terminal as text log lines.
type notifier struct {
	log *slog.Logger
}

func newNotifier(w io.Writer) *notifier {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return attr
		},
	})
	return &notifier{log: slog.New(h)}
}

func (n *notifier) Success(msg string) { n.log.Info(msg) }

func (n *notifier) Error(msg string) { n.log.Error(msg) }

// exitNavigator records that the session finished and the command may return.
type exitNavigator struct {
	left bool
}

func (n *exitNavigator) Leave() { n.left = true }
