package service

import (
	"context"

	"go.uber.org/zap"
)

type undoStep struct {
	name string
	fn   func(ctx context.Context) error
}

// compensation tracks undo actions for a multi-step write. The store offers
// no transactions, so each completed step registers how to take itself back;
// on failure the steps run in reverse order. Undo failures are collected, not
// raised: the caller must surface the original error, never the cleanup one.
type compensation struct {
	steps []undoStep
}

func (c *compensation) push(name string, fn func(ctx context.Context) error) {
	c.steps = append(c.steps, undoStep{name: name, fn: fn})
}

// rollback executes registered undos in reverse order and returns the names
// of steps whose undo failed alongside the errors, for logging.
func (c *compensation) rollback(ctx context.Context, logger *zap.Logger) []error {
	var failures []error
	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		if err := step.fn(ctx); err != nil {
			failures = append(failures, err)
			if logger != nil {
				logger.Error("compensation step failed",
					zap.String("step", step.name),
					zap.Error(err),
				)
			}
		}
	}
	c.steps = nil
	return failures
}
