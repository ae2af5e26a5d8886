package audit

import (
	"context"
	"log/slog"
)

// Worker drains an inbox into a Store until the inbox is closed.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run() {
	for event := range w.inbox {
		if err := w.store.Append(context.Background(), event); err != nil {
			w.logger.Error("failed to append audit event",
				"error", err,
				"action", event.Action,
				"request_id", event.RequestID,
			)
		}
	}
}
