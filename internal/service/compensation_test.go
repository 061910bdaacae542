package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompensationRollbackRunsInReverseOrder(t *testing.T) {
	comp := &compensation{}
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		comp.push(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	failures := comp.rollback(context.Background(), nil)

	assert.Empty(t, failures)
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestCompensationRollbackCollectsFailures(t *testing.T) {
	comp := &compensation{}
	var order []string
	comp.push("ok", func(ctx context.Context) error {
		order = append(order, "ok")
		return nil
	})
	comp.push("broken", func(ctx context.Context) error {
		order = append(order, "broken")
		return errors.New("undo failed")
	})

	failures := comp.rollback(context.Background(), nil)

	require.Len(t, failures, 1)
	assert.Equal(t, []string{"broken", "ok"}, order, "a failed undo must not stop the rest")
}

func TestCompensationRollbackClearsSteps(t *testing.T) {
	comp := &compensation{}
	calls := 0
	comp.push("once", func(ctx context.Context) error {
		calls++
		return nil
	})

	comp.rollback(context.Background(), nil)
	comp.rollback(context.Background(), nil)

	assert.Equal(t, 1, calls)
}
