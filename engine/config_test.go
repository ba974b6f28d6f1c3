package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		token string
		mode  Mode
		ok    bool
	}{
		{"normal", ModeNormal, true},
		{"noisy", ModeNoisy, true},
		{"ramp", ModeRamp, true},
		{"normal\n", ModeNormal, true},
		{"Normal", ModeInvalid, false},
		{"", ModeInvalid, false},
		{"ramp\n\n", ModeInvalid, false},
	}

	for _, c := range cases {
		mode, ok := parseMode(c.token)
		assert.Equal(t, c.ok, ok, c.token)
		assert.Equal(t, c.mode, mode, c.token)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, defaultPeriodMS, cfg.PeriodMS)
	assert.Equal(t, defaultThresholdMC, cfg.ThresholdMC)
	assert.Equal(t, ModeNormal, cfg.Mode)
	assert.Equal(t, defaultCurrentMC, cfg.InitialMC)
}

func TestNew_RejectsOutOfRangePeriod(t *testing.T) {
	_, err := New(WithPeriodMS(0))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = New(WithPeriodMS(10001))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestNew_RejectsOutOfRangeThreshold(t *testing.T) {
	_, err := New(WithThresholdMC(-20001))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = New(WithThresholdMC(60001))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestNew_AcceptsBoundaries(t *testing.T) {
	_, err := New(WithPeriodMS(1), WithThresholdMC(-20000))
	require.NoError(t, err)

	_, err = New(WithPeriodMS(10000), WithThresholdMC(60000))
	require.NoError(t, err)
}
