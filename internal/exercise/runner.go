package exercise

import (
	"context"
	"time"

	"smtlab/internal/report"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Runner struct {
	manager *Manager
}

func NewRunner(mm *Manager) *Runner {
	return &Runner{manager: mm}
}

// Run runs the named exercises, or all of them when names is empty, and
// collects their reports. It stops at the first error.
func (r *Runner) Run(ctx context.Context, names ...string) ([]*report.Report, error) {
	exercises := r.manager.Exercises()
	if len(names) > 0 {
		exercises = make([]Exercise, 0, len(names))
		for _, name := range names {
			e, err := r.manager.Get(name)
			if err != nil {
				return nil, err
			}
			exercises = append(exercises, e)
		}
	}
	if len(exercises) == 0 {
		return nil, errors.New("no exercise registered")
	}

	var (
		reports   []*report.Report
		startTime = time.Now()
	)
	for _, e := range exercises {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		log.Infof("running exercise %s", e.Name())
		start := time.Now()
		rep, err := e.Run(ctx)
		if err != nil {
			log.Errorf("exercise %s: %v", e.Name(), err)
			return reports, errors.Wrapf(err, "exercise %s", e.Name())
		}
		if rep.Elapsed == 0 {
			rep.Elapsed = time.Since(start)
		}
		log.Infof("exercise %s: %s", e.Name(), rep.Verdict)
		reports = append(reports, rep)
	}
	log.Infof("%d exercises done in %s", len(reports), time.Since(startTime))
	return reports, nil
}
