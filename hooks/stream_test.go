package hooks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NguyenPhongVN/gohooks/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a stream re-enters success per element and keeps the last value after the
// source ends
func TestStreamPhaseSequence(t *testing.T) {
	rt := hooks.NewRuntime()
	feed := make(chan hooks.StreamEvent[string])

	observed := []string{}
	d := hooks.NewDriver(rt, func(s *hooks.Scope) {
		phase := hooks.UseStream(s, "letters", hooks.Once(), func(ctx context.Context) <-chan hooks.StreamEvent[string] {
			return feed
		})
		switch phase.Kind {
		case hooks.PhaseRunning:
			observed = append(observed, "running")
		case hooks.PhaseSuccess:
			observed = append(observed, "success "+phase.Value)
		}
	})

	d.Render()
	for _, v := range []string{"a", "b", "c"} {
		feed <- hooks.StreamEvent[string]{Value: v}
		require.NoError(t, rt.FlushWait(time.Second))
		assert.True(t, d.RenderIfNeeded())
	}
	assert.Equal(t, []string{"running", "success a", "success b", "success c"}, observed)

	close(feed)
	require.NoError(t, rt.Settle(time.Second))
	assert.False(t, d.RenderIfNeeded())
	assert.Equal(t, []string{"running", "success a", "success b", "success c"}, observed)
}

// an error event is terminal and stops consumption
func TestStreamErrorIsTerminal(t *testing.T) {
	rt := hooks.NewRuntime()
	feed := make(chan hooks.StreamEvent[string])
	broken := errors.New("connection reset")

	var phase hooks.Phase[string]
	d := hooks.NewDriver(rt, func(s *hooks.Scope) {
		phase = hooks.UseStream(s, "socket", hooks.Once(), func(ctx context.Context) <-chan hooks.StreamEvent[string] {
			return feed
		})
	})

	d.Render()
	feed <- hooks.StreamEvent[string]{Value: "hello"}
	require.NoError(t, rt.FlushWait(time.Second))
	assert.True(t, d.RenderIfNeeded())
	assert.Equal(t, "hello", phase.Value)

	feed <- hooks.StreamEvent[string]{Err: broken}
	require.NoError(t, rt.Settle(time.Second))
	assert.True(t, d.RenderIfNeeded())
	assert.True(t, phase.IsFailure())
	assert.ErrorIs(t, phase.Err, broken)

	close(feed)
	require.NoError(t, rt.Settle(time.Second))
	assert.False(t, d.RenderIfNeeded())
}

// a publisher's value channel adapts into the stream binding
func TestPublisherAdaptsValueChannel(t *testing.T) {
	rt := hooks.NewRuntime()

	var phase hooks.Phase[int]
	d := hooks.NewDriver(rt, func(s *hooks.Scope) {
		phase = hooks.UsePublisher(s, "ticks", hooks.Once(), func(ctx context.Context) <-chan int {
			out := make(chan int, 3)
			out <- 1
			out <- 2
			out <- 3
			close(out)
			return out
		})
	})

	d.Render()
	require.NoError(t, rt.Settle(time.Second))
	for d.RenderIfNeeded() {
		require.NoError(t, rt.Settle(time.Second))
	}
	assert.True(t, phase.IsSuccess())
	assert.Equal(t, 3, phase.Value)
}

// the manual publisher form does not consume until triggered
func TestPublisherSubscribeManual(t *testing.T) {
	rt := hooks.NewRuntime()
	subscriptions := 0

	var phase hooks.Phase[int]
	var start func()
	d := hooks.NewDriver(rt, func(s *hooks.Scope) {
		phase, start = hooks.UsePublisherSubscribe(s, "ticks", func(ctx context.Context) <-chan int {
			subscriptions++
			out := make(chan int, 1)
			out <- 41 + subscriptions
			close(out)
			return out
		})
	})

	d.Render()
	assert.True(t, phase.IsPending())
	assert.Equal(t, 0, subscriptions)

	start()
	require.NoError(t, rt.Settle(time.Second))
	for d.RenderIfNeeded() {
		require.NoError(t, rt.Settle(time.Second))
	}
	assert.True(t, phase.IsSuccess())
	assert.Equal(t, 42, phase.Value)
}

// a dependency-key change cancels the old subscription and resubscribes
func TestStreamResubscribeOnDepsChange(t *testing.T) {
	rt := hooks.NewRuntime()
	topic := "news"
	var firstCtx context.Context

	d := hooks.NewDriver(rt, func(s *hooks.Scope) {
		tp := topic
		hooks.UseStream(s, "sub", hooks.DepsOf(tp), func(ctx context.Context) <-chan hooks.StreamEvent[string] {
			if firstCtx == nil {
				firstCtx = ctx
			}
			out := make(chan hooks.StreamEvent[string])
			go func() {
				<-ctx.Done()
				close(out)
			}()
			return out
		})
	})

	d.Render()
	require.NotNil(t, firstCtx)
	require.NoError(t, firstCtx.Err())

	topic = "sports"
	d.Render()
	assert.Error(t, firstCtx.Err())

	d.Dispose()
	require.NoError(t, rt.Settle(time.Second))
}

// Settle reports a timeout while a source stays open
func TestSettleTimesOutOnOpenStream(t *testing.T) {
	rt := hooks.NewRuntime()
	feed := make(chan hooks.StreamEvent[int])
	d := hooks.NewDriver(rt, func(s *hooks.Scope) {
		hooks.UseStream(s, "endless", hooks.Once(), func(ctx context.Context) <-chan hooks.StreamEvent[int] {
			return feed
		})
	})

	d.Render()
	assert.ErrorIs(t, rt.Settle(20*time.Millisecond), hooks.ErrTimeout)

	close(feed)
	require.NoError(t, rt.Settle(time.Second))
	d.Dispose()
}
