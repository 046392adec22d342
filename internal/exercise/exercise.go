// Package exercise registers the solver exercises and runs them one after
// another.
package exercise

import (
	"context"

	"smtlab/internal/report"
)

type Exercise interface {
	Name() string
	Description() string
	Run(ctx context.Context) (*report.Report, error)
}

type BaseExercise struct {
	name        string
	description string
}

func (be *BaseExercise) Name() string {
	return be.name
}

func (be *BaseExercise) Description() string {
	return be.description
}
