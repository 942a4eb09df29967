package effect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/stoneandsaber/internal/game/effect"
	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
)

// dummy is a minimal Target owning a status and a tracker.
type dummy struct {
	st      *status.Status
	tracker *effect.Tracker
}

func newDummy(life int) *dummy {
	return &dummy{st: status.New(life, 0, 0), tracker: effect.NewTracker()}
}

func (d *dummy) Status() *status.Status           { return d.st }
func (d *dummy) AddTrouble(e effect.Effect) error { return d.tracker.Add(e) }

func mustAction(t *testing.T, dir effect.Direction, amount int) effect.Action {
	t.Helper()
	a, err := effect.NewAction(dir, amount)
	require.NoError(t, err)
	return a
}

func TestNewAction_RejectsNegative(t *testing.T) {
	_, err := effect.NewAction(effect.Decrease, -1)
	assert.True(t, errors.Is(err, effect.ErrInvalidAmount))
	assert.True(t, errors.Is(err, status.ErrInvalidAmount))
}

func TestNewAction_RejectsUnknownDirection(t *testing.T) {
	_, err := effect.NewAction(effect.Direction(7), 1)
	assert.Error(t, err)
}

func TestAction_Apply(t *testing.T) {
	s := status.New(100, 0, 0)
	require.NoError(t, mustAction(t, effect.Decrease, 30).Apply(s))
	assert.Equal(t, 70, s.Life())
	require.NoError(t, mustAction(t, effect.Increase, 10).Apply(s))
	assert.Equal(t, 80, s.Life())
	require.NoError(t, mustAction(t, effect.Increase, 500).Apply(s))
	assert.Equal(t, 100, s.Life())
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "INCREASE", effect.Increase.String())
	assert.Equal(t, "DECREASE", effect.Decrease.String())
}

func TestEffect_Kinds(t *testing.T) {
	a := mustAction(t, effect.Decrease, 50)
	inst := effect.Instant(a, status.Physical)
	assert.True(t, inst.IsInstantaneous())
	assert.False(t, inst.IsLasting())
	assert.False(t, inst.IsExpired())
	assert.Equal(t, 0, inst.Ticks())

	last := effect.LastingDefault(a, status.Fire)
	assert.True(t, last.IsLasting())
	assert.False(t, last.IsExpired())
	assert.Equal(t, effect.DefaultTicks, last.Ticks())
	assert.Equal(t, "FIRE:50", last.String())
	assert.Equal(t, "lasting", last.Kind().String())

	assert.True(t, effect.NewLasting(a, status.Fire, 0).IsExpired())
}

func TestEffect_ApplyTo_Instant(t *testing.T) {
	d := newDummy(500)
	e := effect.Instant(mustAction(t, effect.Decrease, 200), status.Physical)
	require.NoError(t, e.ApplyTo(d))
	assert.Equal(t, 300, d.st.Life())
	assert.Equal(t, 0, d.tracker.Len(), "instantaneous effects are never tracked")
}

func TestEffect_ApplyTo_LastingQueuesWithoutApplying(t *testing.T) {
	d := newDummy(100)
	e := effect.NewLasting(mustAction(t, effect.Decrease, 20), status.Fire, 3)
	require.NoError(t, e.ApplyTo(d))
	assert.Equal(t, 100, d.st.Life())
	assert.Equal(t, 1, d.tracker.Len())
	assert.Equal(t, 3, e.Ticks(), "template is not mutated")
}

func TestTracker_RejectsInstant(t *testing.T) {
	tr := effect.NewTracker()
	err := tr.Add(effect.Instant(mustAction(t, effect.Decrease, 1), status.Physical))
	assert.True(t, errors.Is(err, effect.ErrNotLasting))
	assert.Equal(t, 0, tr.Len())
}

func TestTracker_BurnSequence(t *testing.T) {
	d := newDummy(100)
	burn := effect.NewLasting(mustAction(t, effect.Decrease, 20), status.Fire, 3)
	require.NoError(t, burn.ApplyTo(d))

	var lives []int
	var removed int
	for i := 0; i < 3; i++ {
		expired, err := d.tracker.Process(d.st)
		require.NoError(t, err)
		removed += len(expired)
		lives = append(lives, d.st.Life())
	}
	assert.Equal(t, []int{80, 60, 40}, lives)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, d.tracker.Len())

	d.tracker.Process(d.st)
	assert.Equal(t, 40, d.st.Life(), "an expired trouble never ticks again")
}

func TestTracker_NoAliasingBetweenTargets(t *testing.T) {
	burn := effect.NewLasting(mustAction(t, effect.Decrease, 10), status.Fire, 2)
	a, b := newDummy(100), newDummy(100)
	require.NoError(t, burn.ApplyTo(a))
	a.tracker.Process(a.st)

	require.NoError(t, burn.ApplyTo(b))
	assert.Equal(t, 1, a.tracker.All()[0].Remaining())
	assert.Equal(t, 2, b.tracker.All()[0].Remaining())

	b.tracker.Process(b.st)
	b.tracker.Process(b.st)
	assert.Equal(t, 0, b.tracker.Len())
	assert.Equal(t, 1, a.tracker.Len())
}

func TestTracker_SameEffectTwiceOnOneTarget(t *testing.T) {
	d := newDummy(100)
	burn := effect.NewLasting(mustAction(t, effect.Decrease, 5), status.Fire, 2)
	require.NoError(t, burn.ApplyTo(d))
	d.tracker.Process(d.st)
	require.NoError(t, burn.ApplyTo(d))

	expired, err := d.tracker.Process(d.st)
	require.NoError(t, err)
	assert.Len(t, expired, 1)
	assert.Equal(t, 1, d.tracker.Len())
	assert.Equal(t, 85, d.st.Life())
}

func TestTracker_ProcessHealing(t *testing.T) {
	d := newDummy(100)
	d.st.SetLife(50)
	regen := effect.LastingDefault(mustAction(t, effect.Increase, 30), status.Fairy)
	require.NoError(t, regen.ApplyTo(d))
	d.tracker.Process(d.st)
	d.tracker.Process(d.st)
	assert.Equal(t, 100, d.st.Life())
}

func TestTracker_AllIsCopyAndClear(t *testing.T) {
	tr := effect.NewTracker()
	require.NoError(t, tr.Add(effect.LastingDefault(mustAction(t, effect.Decrease, 1), status.Poison)))
	all := tr.All()
	all[0] = nil
	assert.NotNil(t, tr.All()[0])
	tr.Clear()
	assert.Equal(t, 0, tr.Len())
}

func TestPropertyLastingExpiresAfterExactlyN(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "ticks")
		amount := rapid.IntRange(0, 10).Draw(rt, "amount")
		a, err := effect.NewAction(effect.Decrease, amount)
		require.NoError(rt, err)

		tr := effect.NewTracker()
		require.NoError(rt, tr.Add(effect.NewLasting(a, status.Fire, n)))
		s := status.New(10_000, 0, 0)
		for i := 1; i <= n; i++ {
			expired, err := tr.Process(s)
			require.NoError(rt, err)
			if i < n {
				assert.Empty(rt, expired, "tick %d of %d", i, n)
				assert.Equal(rt, 1, tr.Len())
			} else {
				assert.Len(rt, expired, 1)
				assert.Equal(rt, 0, tr.Len())
			}
		}
		assert.Equal(rt, 10_000-n*amount, s.Life())
	})
}
