package history

import (
	"context"
	"strings"

	"nathanbeddoewebdev/vitals/internal/entry"
	"nathanbeddoewebdev/vitals/internal/retry"

	"go.uber.org/zap"
)

// Journal writes entry and app events to a Repository. Failures are logged
// and otherwise ignored so recording never blocks data entry. A Journal with
// a nil repository only logs.
type Journal struct {
	repo Repository
	log  *zap.SugaredLogger
}

// NewJournal returns a journal over repo.
func NewJournal(repo Repository, log *zap.SugaredLogger) *Journal {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Journal{repo: repo, log: log}
}

// Record implements entry.Journal.
func (j *Journal) Record(e entry.Event) {
	mode := ""
	if e.Mode != 0 {
		mode = e.Mode.String()
	}
	j.Save(&Record{Action: e.Action, Metric: e.Metric, Mode: mode, Detail: e.Detail})
}

// Save stores rec, logging instead of failing. A database locked by another
// process is retried briefly.
func (j *Journal) Save(rec *Record) {
	if j.repo == nil {
		return
	}
	err := retry.Do(context.Background(), retry.Local, isBusy, func() error {
		return j.repo.Save(rec)
	})
	if err != nil {
		j.log.Warnw("failed to record history", "action", rec.Action, "metric", rec.Metric, "error", err)
	}
}

// Fail stores a failed action with err as its detail.
func (j *Journal) Fail(action, metric string, err error) {
	j.Save(&Record{Action: action, Metric: metric, Outcome: OutcomeError, Detail: err.Error()})
}

// Close closes the underlying repository.
func (j *Journal) Close() error {
	if j.repo == nil {
		return nil
	}
	return j.repo.Close()
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
