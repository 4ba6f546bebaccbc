package anneal

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterState is a trivial state: a single float64 that moves up or down
// by 1 each proposal. Its minimum energy is 0.
type counterState struct{ v float64 }

func counterEnergy(s *counterState) float64 { return s.v * s.v }

func counterPropose(s *counterState, rng *rand.Rand) (func(), error) {
	prev := s.v
	if rng.Float64() < 0.5 {
		s.v++
	} else {
		s.v--
	}
	return func() { s.v = prev }, nil
}

func TestRunConvergesTowardLowerEnergy(t *testing.T) {
	s := &counterState{v: 50}
	a := New(counterEnergy, counterPropose, 1)

	result, err := a.Run(s, 10, 0.01, 2000)
	require.NoError(t, err)
	assert.Less(t, result.Energy, counterEnergy(&counterState{v: 50}))
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	run := func() Result {
		s := &counterState{v: 50}
		a := New(counterEnergy, counterPropose, 7)
		r, err := a.Run(s, 10, 0.01, 500)
		require.NoError(t, err)
		return r
	}

	r1 := run()
	r2 := run()
	assert.Equal(t, r1, r2)
}

func TestRunTracksBestEverWithCheckpoint(t *testing.T) {
	s := &counterState{v: 50}
	a := New(counterEnergy, counterPropose, 3)
	a.Checkpoint = func(s *counterState) any { return s.v }
	a.Restore = func(s *counterState, snap any) { s.v = snap.(float64) }

	result, err := a.Run(s, 50, 0.01, 3000)
	require.NoError(t, err)
	assert.InDelta(t, result.Energy, s.v*s.v, 1e-9, "state left at its best-ever snapshot")
}

func TestRunCallsProgressEveryStep(t *testing.T) {
	s := &counterState{v: 50}
	a := New(counterEnergy, counterPropose, 1)

	var calls int
	a.Progress = func(step, steps int, energy float64) {
		calls++
		assert.Equal(t, 25, steps)
	}

	_, err := a.Run(s, 10, 0.01, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, calls)
}

func TestAutoPropagatesProposeError(t *testing.T) {
	wantErr := errors.New("boom")
	a := New(counterEnergy, func(s *counterState, rng *rand.Rand) (func(), error) {
		return nil, wantErr
	}, 1)

	_, err := a.Auto(&counterState{}, 0.01, 5)
	assert.ErrorIs(t, err, ErrNothingToPropose)
}

func TestTemperatureScheduleMonotonicallyDecays(t *testing.T) {
	tMax, tMin := 100.0, 1.0
	steps := 10
	prev := temperature(tMax, tMin, 0, steps)
	assert.InDelta(t, tMax, prev, 1e-9)
	for k := 1; k <= steps; k++ {
		cur := temperature(tMax, tMin, k, steps)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
	assert.InDelta(t, tMin, prev, 1e-9)
}

func TestAcceptAlwaysTakesImprovingMoves(t *testing.T) {
	a := New(counterEnergy, counterPropose, 1)
	assert.True(t, a.accept(-5, 0.001))
}
