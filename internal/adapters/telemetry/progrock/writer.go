package progrock

import (
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/lal/internal/core/ports"
)

var _ progrock.Writer = (*StageWriter)(nil)

// StageWriter is a progrock.Writer that logs each vertex once when it completes.
type StageWriter struct {
	logger ports.Logger

	mu   sync.Mutex
	done map[string]bool
}

// NewStageWriter creates a new StageWriter.
func NewStageWriter(logger ports.Logger) *StageWriter {
	return &StageWriter{
		logger: logger,
		done:   make(map[string]bool),
	}
}

// WriteStatus logs vertices that completed in this update.
func (w *StageWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil || w.done[v.Id] {
			continue
		}
		w.done[v.Id] = true

		if v.Error != nil {
			w.logger.Warn(v.Name + " failed: " + *v.Error)
			continue
		}
		msg := v.Name + " done"
		if v.Started != nil {
			took := v.Completed.AsTime().Sub(v.Started.AsTime()).Round(time.Millisecond)
			msg += " in " + took.String()
		}
		w.logger.Debug(msg)
	}
	return nil
}

// Close does nothing.
func (w *StageWriter) Close() error {
	return nil
}
