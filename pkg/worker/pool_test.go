package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name      string
		workers   int
		rateLimit int
		tasks     func() []Task[int]
		validate  func(*testing.T, []Result[int])
	}{
		{
			name:    "results keep submission order",
			workers: 4,
			tasks: func() []Task[int] {
				tasks := make([]Task[int], 20)
				for i := range tasks {
					i := i
					tasks[i] = Task[int]{
						ID: i,
						Execute: func(ctx context.Context) (int, error) {
							// later tasks finish first
							time.Sleep(time.Duration(20-i) * time.Millisecond)
							return i * 2, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result[int]) {
				require.Len(t, results, 20)
				for i, r := range results {
					assert.Equal(t, i, r.ID)
					assert.Equal(t, i*2, r.Value)
					assert.NoError(t, r.Err)
				}
			},
		},
		{
			name:    "single worker",
			workers: 1,
			tasks: func() []Task[int] {
				return []Task[int]{
					{ID: 7, Execute: func(ctx context.Context) (int, error) { return 1, nil }},
					{ID: 3, Execute: func(ctx context.Context) (int, error) { return 2, nil }},
				}
			},
			validate: func(t *testing.T, results []Result[int]) {
				require.Len(t, results, 2)
				assert.Equal(t, 7, results[0].ID)
				assert.Equal(t, 3, results[1].ID)
			},
		},
		{
			name:    "failed task does not abort the batch",
			workers: 2,
			tasks: func() []Task[int] {
				return []Task[int]{
					{ID: 1, Execute: func(ctx context.Context) (int, error) { return 0, errors.New("planned error") }},
					{ID: 2, Execute: func(ctx context.Context) (int, error) { return 5, nil }},
				}
			},
			validate: func(t *testing.T, results []Result[int]) {
				require.Len(t, results, 2)
				assert.ErrorContains(t, results[0].Err, "planned error")
				assert.Equal(t, 5, results[1].Value)
			},
		},
		{
			name:      "rate limited processing",
			workers:   2,
			rateLimit: 100,
			tasks: func() []Task[int] {
				tasks := make([]Task[int], 5)
				for i := range tasks {
					i := i
					tasks[i] = Task[int]{ID: i, Execute: func(ctx context.Context) (int, error) { return i, nil }}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result[int]) {
				assert.Len(t, results, 5)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPool[int](Config{Workers: tt.workers, RateLimit: tt.rateLimit})
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			require.NoError(t, p.Start(ctx))
			defer p.Stop()

			for _, task := range tt.tasks() {
				require.NoError(t, p.Submit(task))
			}

			results, err := p.Wait()
			require.NoError(t, err)
			tt.validate(t, results)
		})
	}
}

func TestPoolCancellation(t *testing.T) {
	p, err := NewPool[int](Config{Workers: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Start(ctx))

	var ran atomic.Int32
	for i := 0; i < 4; i++ {
		require.NoError(t, p.Submit(Task[int]{
			ID: i,
			Execute: func(ctx context.Context) (int, error) {
				ran.Add(1)
				<-ctx.Done()
				return 0, ctx.Err()
			},
		}))
	}
	cancel()

	results, err := p.Wait()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 4)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
	assert.NoError(t, p.Stop())
}

func TestPoolLifecycle(t *testing.T) {
	_, err := NewPool[int](Config{Workers: 0})
	assert.EqualError(t, err, "number of workers must be positive")

	_, err = NewPool[int](Config{Workers: 1, RateLimit: -1})
	assert.EqualError(t, err, "rate limit must be non-negative")

	p, err := NewPool[string](Config{Workers: 1})
	require.NoError(t, err)
	assert.Error(t, p.Submit(Task[string]{}), "submit before start")
	assert.Equal(t, StatusNew, p.GetStats().Status)

	require.NoError(t, p.Start(context.Background()))
	assert.Error(t, p.Start(context.Background()))
	assert.Equal(t, StatusRunning, p.GetStats().Status)

	require.NoError(t, p.Submit(Task[string]{ID: 1, Execute: func(ctx context.Context) (string, error) { return "ok", nil }}))
	results, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, "ok", results[0].Value)
	stats := p.GetStats()
	assert.Equal(t, StatusDrained, stats.Status)
	assert.Equal(t, 1, stats.Submitted)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 0, stats.Failed)

	_, err = p.Wait()
	assert.Error(t, err)
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
	assert.Equal(t, StatusStopped, p.GetStats().Status)
}
