// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/cliphist/clipsync/internal/history"
	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/models"
)

const defaultPollInterval = 500 * time.Millisecond

// Clipboard is the system clipboard surface the capture worker reads.
type Clipboard interface {
	ReadText() (string, error)
}

// SystemClipboard reads the platform clipboard via atotto/clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// ChangeQueuer is the part of the sync coordinator the capture worker
// needs: queueing a save for a freshly captured entry.
type ChangeQueuer interface {
	QueueSave(id uuid.UUID) error
}

// CaptureWorker polls the system clipboard and records every new text
// payload into local history, queueing it for sync.
//
// Polling is the portable lowest common denominator; there is no
// cross-platform clipboard change notification.
type CaptureWorker struct {
	clip     Clipboard
	history  history.Store
	queue    ChangeQueuer
	interval time.Duration
	logger   *logger.Logger

	lastText string
}

func NewCaptureWorker(clip Clipboard, store history.Store, queue ChangeQueuer, interval time.Duration, log *logger.Logger) *CaptureWorker {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &CaptureWorker{
		clip:     clip,
		history:  store,
		queue:    queue,
		interval: interval,
		logger:   log,
	}
}

func (w *CaptureWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.pollOnce(ctx)
		}
	}
}

// pollOnce reads the clipboard and records the payload when it changed
// since the previous poll. Read errors are logged and skipped; the next
// tick retries.
func (w *CaptureWorker) pollOnce(ctx context.Context) {
	text, err := w.clip.ReadText()
	if err != nil {
		w.logger.Debug().Err(err).Msg("clipboard read failed")
		return
	}

	if text == "" || text == w.lastText {
		return
	}
	w.lastText = text

	item := models.ClipboardItem{
		ID:        uuid.New(),
		Content:   models.TextContent(text),
		Timestamp: time.Now().UTC(),
	}

	if err := w.history.SaveCaptured(ctx, item); err != nil {
		w.logger.Err(err).Msg("failed to save captured entry")
		return
	}

	if err := w.queue.QueueSave(item.ID); err != nil {
		w.logger.Err(err).Str("id", item.ID.String()).Msg("failed to queue captured entry")
	}

	w.logger.Debug().Str("preview", item.Content.Preview()).Msg("captured clipboard entry")
}
