// Package anneal implements a generic simulated-annealing driver. It knows
// nothing about map labels: it is parameterized entirely by an energy
// probe and a propose-a-move callback, and depends on no other package in
// this module.
package anneal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrNothingToPropose is returned by Auto when a calibration probe move
// fails; callers (e.g. an empty Places population) should treat this as a
// fatal setup error. Run wraps a failing proposal's error directly instead.
var ErrNothingToPropose = errors.New("anneal: propose failed during calibration")

// Mutator proposes and applies one move on state S, pulling all random
// choices from rng in a fixed order. It returns a function that undoes the
// just-applied move (restoring S to exactly how it was before this call),
// or an error if no move could be proposed (e.g. an empty population).
type Mutator[S any] func(state S, rng *rand.Rand) (undo func(), err error)

// EnergyFunc is a cheap probe of a state's current total energy.
type EnergyFunc[S any] func(state S) float64

// Checkpoint captures enough of a state to restore it later via Restore,
// without retaining the state itself. Optional: when it or Restore is nil,
// Auto and Run leave the state wherever the schedule ended, while
// Result.Energy still reports the best energy ever observed.
type Checkpoint[S any] func(state S) any

// Restore reinstates a state to a previously captured Checkpoint.
type Restore[S any] func(state S, snapshot any)

// Annealer drives a simulated-annealing search over a state S. The random
// stream is owned exclusively by the Annealer; every stochastic decision
// (which move to propose, the accept/reject coin) draws from it in a fixed
// order, so a given seed and step count reproduce bit-identical results.
type Annealer[S any] struct {
	Energy     EnergyFunc[S]
	Propose    Mutator[S]
	Checkpoint Checkpoint[S]
	Restore    Restore[S]

	// Progress, if set, is called after every step with the step index, the
	// total step count, and the current (post accept/reject) energy. The
	// driver calls it unconditionally; a caller that only wants periodic
	// status printing should throttle inside the callback itself.
	Progress func(step, steps int, energy float64)

	rng *rand.Rand
}

// New creates an Annealer seeded from seed.
func New[S any](energy EnergyFunc[S], propose Mutator[S], seed int64) *Annealer[S] {
	return &Annealer[S]{
		Energy:  energy,
		Propose: propose,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Result is what a completed annealing run produced.
type Result struct {
	Energy    float64
	Steps     int
	TMax, TMin float64
}

// temperature returns the schedule's temperature at step k of steps,
// T_k = T_max * (T_min/T_max)^(k/steps).
func temperature(tMax, tMin float64, k, steps int) float64 {
	if steps <= 0 {
		return tMin
	}
	frac := float64(k) / float64(steps)
	return tMax * math.Pow(tMin/tMax, frac)
}

// accept decides whether to keep a proposed move given the energy delta and
// current temperature: always for non-worsening moves, otherwise with
// probability exp(-delta/T).
func (a *Annealer[S]) accept(delta, t float64) bool {
	if delta < 0 {
		return true
	}
	if t <= 0 {
		return false
	}
	return a.rng.Float64() < math.Exp(-delta/t)
}

// calibrate runs probeSteps proposals at an effectively infinite
// temperature (every move accepted) and measures the mean wall-clock time
// per step and the mean magnitude of accepted worsening moves (ΔE+), the
// two inputs the auto-tune formula needs.
func (a *Annealer[S]) calibrate(state S, probeSteps int) (meanStepTime time.Duration, meanWorsening float64, err error) {
	start := time.Now()
	var worseningSum float64
	var worseningCount int

	for i := 0; i < probeSteps; i++ {
		before := a.Energy(state)
		undo, perr := a.Propose(state, a.rng)
		if perr != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrNothingToPropose, perr)
		}
		after := a.Energy(state)
		delta := after - before
		if delta > 0 {
			worseningSum += delta
			worseningCount++
		}
		_ = undo // calibration accepts every move, worsening or not
	}

	elapsed := time.Since(start)
	if probeSteps > 0 {
		meanStepTime = elapsed / time.Duration(probeSteps)
	}
	if worseningCount > 0 {
		meanWorsening = worseningSum / float64(worseningCount)
	} else {
		meanWorsening = 1 // degenerate case: no worsening moves seen, pick a harmless default
	}
	return meanStepTime, meanWorsening, nil
}

// Auto calibrates T_max, T_min and the step count from a short probe run,
// then runs the annealing schedule for the computed wall-clock budget.
// Returns the best energy ever observed (and, if Checkpoint/Restore are
// set, leaves state at that best snapshot rather than wherever the
// schedule happened to end).
func (a *Annealer[S]) Auto(state S, wallMinutes float64, probeSteps int) (Result, error) {
	meanStepTime, deltaPlus, err := a.calibrate(state, probeSteps)
	if err != nil {
		return Result{}, err
	}

	const initialAcceptRate = 0.98
	const finalAcceptRate = 0.001
	tMax := deltaPlus / math.Log(1/initialAcceptRate)
	tMin := deltaPlus / math.Log(1/finalAcceptRate)

	steps := 0
	if meanStepTime > 0 {
		steps = int(wallMinutes * 60 / meanStepTime.Seconds())
	}

	return a.Run(state, tMax, tMin, steps)
}

// Run executes exactly `steps` proposals under the T_max/T_min schedule.
// Exposed directly (in addition to Auto) so callers can replay a previous
// calibration's schedule deterministically.
func (a *Annealer[S]) Run(state S, tMax, tMin float64, steps int) (Result, error) {
	bestEnergy := a.Energy(state)
	var bestSnapshot any
	haveCheckpoint := a.Checkpoint != nil && a.Restore != nil
	if haveCheckpoint {
		bestSnapshot = a.Checkpoint(state)
	}

	for k := 0; k < steps; k++ {
		before := a.Energy(state)
		undo, err := a.Propose(state, a.rng)
		if err != nil {
			return Result{}, fmt.Errorf("anneal: propose failed at step %d: %w", k, err)
		}
		after := a.Energy(state)
		delta := after - before

		t := temperature(tMax, tMin, k, steps)
		if !a.accept(delta, t) {
			undo()
			after = before
		}

		if after < bestEnergy {
			bestEnergy = after
			if haveCheckpoint {
				bestSnapshot = a.Checkpoint(state)
			}
		}

		if a.Progress != nil {
			a.Progress(k, steps, after)
		}
	}

	if haveCheckpoint {
		a.Restore(state, bestSnapshot)
	}

	return Result{Energy: bestEnergy, Steps: steps, TMax: tMax, TMin: tMin}, nil
}
