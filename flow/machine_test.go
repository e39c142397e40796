package flow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tabula/flow"
)

// await waits for a completion signal from a callback. Callbacks run with
// the machine lock held, so once the signal lands a State() call observes
// the settled post-cycle state.
func await(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for apply cycle")
	}
}

func TestNew(t *testing.T) {
	m := flow.New()
	assert.Equal(t, flow.StateNormal, m.State())
	assert.Equal(t, flow.IdleMode, m.Mode())
	assert.Equal(t, "idle/normal", m.Status())
	assert.True(t, m.IsNormal())
}

func TestRegister(t *testing.T) {
	m := flow.New()

	require.NoError(t, m.Register("fetch_v2", flow.ModeConfig{}))

	err := m.Register("fetch_v2", flow.ModeConfig{})
	require.ErrorIs(t, err, flow.ErrModeDup)

	// The idle mode is reserved at construction.
	err = m.Register("idle", flow.ModeConfig{})
	require.ErrorIs(t, err, flow.ErrModeDup)

	for _, name := range []string{"", "with space", "dash-ed", "dot.ted"} {
		err := m.Register(name, flow.ModeConfig{})
		assert.ErrorIs(t, err, flow.ErrModeName, name)
	}

	assert.Panics(t, func() { m.MustRegister("fetch_v2", flow.ModeConfig{}) })
	assert.NotPanics(t, func() { m.MustRegister("other", flow.ModeConfig{}) })
}

func TestStart(t *testing.T) {
	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{})

	_, err := m.Start("missing", flow.OptNone)
	require.ErrorIs(t, err, flow.ErrModeUnknown)

	_, err = m.Start("work", flow.OptCancel)
	require.ErrorIs(t, err, flow.ErrBadOption)

	ok, err := m.Start("work", flow.OptNone)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, flow.StateStarting, m.State())
	assert.Equal(t, "work", m.Mode())

	// A busy machine rejects a second start without error.
	ok, err = m.Start("work", flow.OptNone)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, flow.StateStarting, m.State())
}

func TestGuards(t *testing.T) {
	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{})

	// Submit and Apply both require their entry state.
	ok, err := m.Submit(flow.OptNone)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Apply(flow.OptNone)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, flow.StateNormal, m.State())

	_, _ = m.Start("work", flow.OptNone)
	ok, err = m.Apply(flow.OptNone)
	require.NoError(t, err)
	assert.False(t, ok, "apply from starting must be rejected")

	_, err = m.Submit("bogus")
	require.ErrorIs(t, err, flow.ErrBadOption)
	_, err = m.Apply(flow.OptSubmitted)
	require.ErrorIs(t, err, flow.ErrBadOption)
}

func TestFullCycle(t *testing.T) {
	done := make(chan struct{})
	var got any

	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{
		Applied: func(ctx context.Context) (flow.Result, error) {
			return flow.Result{Success: true, Data: 42}, nil
		},
		ApplySuccess: func(data any) {
			got = data
			close(done)
		},
	})

	ok, err := m.Start("work", flow.OptNone)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.Submit(flow.OptNone)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, flow.StateSubmitting, m.State())

	ok, err = m.Apply(flow.OptNone)
	require.NoError(t, err)
	require.True(t, ok)

	await(t, done)
	assert.Equal(t, 42, got)
	assert.Equal(t, flow.StateNormal, m.State())
	assert.Equal(t, flow.IdleMode, m.Mode(), "cycle completion resets the mode")
}

func TestFailureRollsBackToSubmitting(t *testing.T) {
	done := make(chan struct{})
	var got any

	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{
		Applied: func(ctx context.Context) (flow.Result, error) {
			return flow.Result{Success: false, Data: "not found"}, nil
		},
		ApplyFail: func(data any) {
			got = data
			close(done)
		},
	})

	_, _ = m.Start("work", flow.OptSubmitted)
	ok, err := m.Apply(flow.OptNone)
	require.NoError(t, err)
	require.True(t, ok)

	await(t, done)
	assert.Equal(t, "not found", got)
	// The cycle stays open for another attempt.
	assert.Equal(t, flow.StateSubmitting, m.State())
	assert.Equal(t, "work", m.Mode())
}

func TestHandlerError(t *testing.T) {
	done := make(chan struct{})
	boom := errors.New("backend down")
	var got any

	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{
		Applied: func(ctx context.Context) (flow.Result, error) {
			return flow.Result{}, boom
		},
		ApplyFail: func(data any) {
			got = data
			close(done)
		},
	})

	_, _ = m.Start("work", flow.OptSubmitted)
	_, _ = m.Apply(flow.OptNone)

	await(t, done)
	err, ok := got.(error)
	require.True(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, flow.StateSubmitting, m.State())
}

func TestRollbackToNormalResetsMode(t *testing.T) {
	t.Run("failure after applied shortcut", func(t *testing.T) {
		done := make(chan struct{})
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{
			Applied: func(ctx context.Context) (flow.Result, error) {
				return flow.Result{Success: false, Data: "nope"}, nil
			},
			ApplyFail: func(any) { close(done) },
		})

		// Applying was entered straight from Normal, so the rollback
		// destination is Normal and the cycle must fully close.
		ok, err := m.Start("work", flow.OptApplied)
		require.NoError(t, err)
		require.True(t, ok)

		await(t, done)
		assert.Equal(t, flow.StateNormal, m.State())
		assert.Equal(t, flow.IdleMode, m.Mode())
	})

	t.Run("handler error after applied shortcut", func(t *testing.T) {
		done := make(chan struct{})
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{
			Applied: func(ctx context.Context) (flow.Result, error) {
				return flow.Result{}, errors.New("backend down")
			},
			ApplyFail: func(any) { close(done) },
		})

		_, _ = m.Start("work", flow.OptApplied)
		await(t, done)
		assert.Equal(t, flow.StateNormal, m.State())
		assert.Equal(t, flow.IdleMode, m.Mode())
	})

	t.Run("apply cancel after submitted shortcut", func(t *testing.T) {
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{})

		_, _ = m.Start("work", flow.OptSubmitted)
		ok, err := m.Apply(flow.OptCancel)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, flow.StateNormal, m.State())
		assert.Equal(t, flow.IdleMode, m.Mode())
	})
}

func TestStartShortcuts(t *testing.T) {
	t.Run("submitted skips starting", func(t *testing.T) {
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{})
		ok, err := m.Start("work", flow.OptSubmitted)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, flow.StateSubmitting, m.State())
	})

	t.Run("applied runs the handler at once", func(t *testing.T) {
		done := make(chan struct{})
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{
			Applied: func(ctx context.Context) (flow.Result, error) {
				return flow.Result{Success: true}, nil
			},
			ApplySuccess: func(any) { close(done) },
		})
		ok, err := m.Start("work", flow.OptApplied)
		require.NoError(t, err)
		require.True(t, ok)
		await(t, done)
		assert.True(t, m.IsNormal())
	})

	t.Run("submit applied skips ahead", func(t *testing.T) {
		done := make(chan struct{})
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{
			Applied: func(ctx context.Context) (flow.Result, error) {
				return flow.Result{Success: true}, nil
			},
			ApplySuccess: func(any) { close(done) },
		})
		_, _ = m.Start("work", flow.OptNone)
		ok, err := m.Submit(flow.OptApplied)
		require.NoError(t, err)
		require.True(t, ok)
		await(t, done)
		assert.True(t, m.IsNormal())
	})
}

func TestNoHandlerCompletesImmediately(t *testing.T) {
	m := flow.New()
	m.MustRegister("noop", flow.ModeConfig{})

	ok, err := m.Start("noop", flow.OptApplied)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, m.IsNormal())
	assert.Equal(t, flow.IdleMode, m.Mode())
}

func TestCancel(t *testing.T) {
	t.Run("submit cancel ends the cycle", func(t *testing.T) {
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{})
		_, _ = m.Start("work", flow.OptNone)

		ok, err := m.Submit(flow.OptCancel)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, flow.StateNormal, m.State())
		assert.Equal(t, flow.IdleMode, m.Mode())
	})

	t.Run("apply cancel steps back one state", func(t *testing.T) {
		m := flow.New()
		m.MustRegister("work", flow.ModeConfig{})
		_, _ = m.Start("work", flow.OptNone)
		_, _ = m.Submit(flow.OptNone)

		ok, err := m.Apply(flow.OptCancel)
		require.NoError(t, err)
		require.True(t, ok)
		// History is one level deep: back to starting, mode retained.
		assert.Equal(t, flow.StateStarting, m.State())
		assert.Equal(t, "work", m.Mode())

		// The cycle can move forward again.
		ok, err = m.Submit(flow.OptNone)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, flow.StateSubmitting, m.State())
	})
}

// recorder collects hook firings; hooks fire from both the caller's and the
// worker goroutine.
type recorder struct {
	mu      sync.Mutex
	entries []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.entries = append(r.entries, s)
	r.mu.Unlock()
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

func TestHookOrder(t *testing.T) {
	rec := &recorder{}

	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{
		ModeChanged:  func(old, next string) { rec.add("mode-own:" + old + ">" + next) },
		StateChanged: func(old, next flow.State) { rec.add("state-own:" + old.String() + ">" + next.String()) },
	})
	m.OnModeChanged(func(old, next string) { rec.add("mode:" + old + ">" + next) })
	m.OnStateChanged(func(old, next flow.State) { rec.add("state:" + old.String() + ">" + next.String()) })

	_, _ = m.Start("work", flow.OptNone)

	assert.Equal(t, []string{
		"mode:idle>work",
		"mode-own:idle>work",
		"state:normal>starting",
		"state-own:normal>starting",
	}, rec.all())
}

func TestHookFiresForIncomingMode(t *testing.T) {
	rec := &recorder{}

	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{})
	m.OnModeChanged(func(old, next string) { rec.add(old + ">" + next) })

	_, _ = m.Start("work", flow.OptNone)
	_, _ = m.Submit(flow.OptCancel)

	assert.Equal(t, []string{"idle>work", "work>idle"}, rec.all())
}

func TestHookPanicIsIsolated(t *testing.T) {
	rec := &recorder{}

	m := flow.New()
	m.MustRegister("work", flow.ModeConfig{})
	m.OnStateChanged(func(old, next flow.State) { panic("bad hook") })
	m.OnStateChanged(func(old, next flow.State) { rec.add(next.String()) })

	ok, err := m.Start("work", flow.OptNone)
	require.NoError(t, err)
	require.True(t, ok)

	// The transition completed and later observers still ran.
	assert.Equal(t, flow.StateStarting, m.State())
	assert.Equal(t, []string{"starting"}, rec.all())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", flow.StateUnknown.String())
	assert.Equal(t, "normal", flow.StateNormal.String())
	assert.Equal(t, "starting", flow.StateStarting.String())
	assert.Equal(t, "submitting", flow.StateSubmitting.String())
	assert.Equal(t, "applying", flow.StateApplying.String())
	assert.Equal(t, "invalid", flow.State(99).String())
}
