// internal/app/system/workers/newsrefresh.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/cyberhub/internal/app/news"
	"go.uber.org/zap"
)

// NewsRefresh is a background worker that runs the weekly cyber news
// ingestion. It fires at a fixed weekday and hour in a configured time
// zone; the Ingestor's cooldown makes extra firings harmless.
type NewsRefresh struct {
	ingestor *news.Ingestor
	log      *zap.Logger
	loc      *time.Location
	weekday  time.Weekday
	hour     int
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewNewsRefresh creates the news refresh worker.
//
// Parameters:
//   - ingestor: the configured news ingestor
//   - logger: zap logger for logging
//   - loc: time zone the schedule is evaluated in
//   - weekday, hour: when to fire each week (e.g., Monday at 6)
func NewNewsRefresh(ingestor *news.Ingestor, logger *zap.Logger, loc *time.Location, weekday time.Weekday, hour int) *NewsRefresh {
	return &NewsRefresh{
		ingestor: ingestor,
		log:      logger,
		loc:      loc,
		weekday:  weekday,
		hour:     hour,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop.
func (w *NewsRefresh) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("news refresh worker started",
		zap.String("weekday", w.weekday.String()),
		zap.Int("hour", w.hour),
		zap.String("timezone", w.loc.String()))
}

// Stop signals the worker to stop and waits for it to finish. A refresh
// already in flight runs to completion.
func (w *NewsRefresh) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("news refresh worker stopped")
}

func (w *NewsRefresh) run() {
	defer w.wg.Done()

	for {
		next := nextRunAfter(time.Now().In(w.loc), w.weekday, w.hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-w.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			w.refresh()
		}
	}
}

func (w *NewsRefresh) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := w.ingestor.Run(ctx); err != nil {
		w.log.Error("news refresh failed", zap.Error(err))
	}
}

// nextRunAfter returns the first instant strictly after now that falls on
// the given weekday at the given hour, in now's location.
func nextRunAfter(now time.Time, day time.Weekday, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	for next.Weekday() != day || !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
