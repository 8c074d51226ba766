package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEach_RunsEveryIndex(t *testing.T) {
	out := make([]int, 50)
	err := Each(context.Background(), 4, len(out), func(_ context.Context, i int) error {
		out[i] = i * i
		return nil
	})
	require.NoError(t, err)
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestEach_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32

	err := Each(context.Background(), 2, 1000, func(ctx context.Context, i int) error {
		calls.Add(1)
		if i == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Less(t, int(calls.Load()), 1000)
}

func TestEach_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Each(ctx, 2, 10, func(context.Context, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEach_Empty(t *testing.T) {
	assert.NoError(t, Each(context.Background(), 2, 0, nil))
}

func TestPool_RunCollectsResults(t *testing.T) {
	p := New(3, 0)
	results := p.Run(context.Background())

	go func() {
		defer p.Close()
		for i := 0; i < 5; i++ {
			_ = p.Submit(context.Background(), func(context.Context) error { return nil })
		}
	}()

	n := 0
	for r := range results {
		assert.NoError(t, r.Err)
		n++
	}
	assert.Equal(t, 5, n)
}
