package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep_Normal_StaysInBand(t *testing.T) {
	current := defaultCurrentMC
	dir := 1
	rng := rand.New(rand.NewPCG(1, 1))

	for i := 0; i < 1000; i++ {
		current, dir = step(ModeNormal, current, dir, rng)
		assert.GreaterOrEqual(t, current, normalLowMC)
		assert.LessOrEqual(t, current, normalHighMC+10, "normal band allows a transient overshoot of exactly one step")
	}
}

func TestStep_Normal_WrapSequence(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	current, dir := 45990, 1

	current, dir = step(ModeNormal, current, dir, rng) // 46000
	assert.Equal(t, 46000, current)
	current, dir = step(ModeNormal, current, dir, rng) // transient overshoot
	assert.Equal(t, 46010, current)
	current, _ = step(ModeNormal, current, dir, rng) // wraps
	assert.Equal(t, 44000, current)
}

func TestStep_Noisy_StaysInBand(t *testing.T) {
	current := defaultCurrentMC
	dir := 1
	rng := rand.New(rand.NewPCG(7, 7))

	for i := 0; i < 2000; i++ {
		current, dir = step(ModeNoisy, current, dir, rng)
		assert.GreaterOrEqual(t, current, noisyLowMC)
		assert.LessOrEqual(t, current, noisyHighMC)
	}
}

func TestStep_Ramp_Triangular(t *testing.T) {
	current, dir := defaultCurrentMC, 1
	rng := rand.New(rand.NewPCG(3, 3))

	seenHigh, seenLow := false, false
	for i := 0; i < 500; i++ {
		current, dir = step(ModeRamp, current, dir, rng)
		assert.GreaterOrEqual(t, current, rampLowMC)
		assert.LessOrEqual(t, current, rampHighMC)
		if current == rampHighMC {
			seenHigh = true
		}
		if current == rampLowMC {
			seenLow = true
		}
	}
	assert.True(t, seenHigh)
	assert.True(t, seenLow)
}

func TestStep_Ramp_FirstTwoSteps(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	current, dir := 44010, 1

	current, dir = step(ModeRamp, current, dir, rng)
	assert.Equal(t, 44060, current)
	current, _ = step(ModeRamp, current, dir, rng)
	assert.Equal(t, 44110, current)
}

func TestStep_InvalidMode_IsNoOp(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	current, dir := 45000, 1

	next, nextDir := step(ModeInvalid, current, dir, rng)
	assert.Equal(t, current, next)
	assert.Equal(t, dir, nextDir)
}
