package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest(t *testing.T) {
	tests := []struct {
		name    string
		current Mode
		last    Mode
		button  Button
		want    Mode
	}{
		{"green from standard", ModeStandard, ModeStandard, ButtonGreen, ModeEconomic},
		{"green from economic", ModeEconomic, ModeEconomic, ButtonGreen, ModeStandard},
		{"green in maintenance", ModeMaintenance, ModeStandard, ButtonGreen, ModeNone},
		{"green in config", ModeConfig, ModeStandard, ButtonGreen, ModeNone},
		{"red from standard", ModeStandard, ModeStandard, ButtonRed, ModeMaintenance},
		{"red from economic", ModeEconomic, ModeEconomic, ButtonRed, ModeMaintenance},
		{"red back to standard", ModeMaintenance, ModeStandard, ButtonRed, ModeStandard},
		{"red back to economic", ModeMaintenance, ModeEconomic, ButtonRed, ModeEconomic},
		{"red in config", ModeConfig, ModeStandard, ButtonRed, ModeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Request(tt.current, tt.last, tt.button))
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		current, requested, want Mode
	}{
		{ModeStandard, ModeEconomic, ModeEconomic},
		{ModeEconomic, ModeStandard, ModeStandard},
		{ModeStandard, ModeMaintenance, ModeMaintenance},
		{ModeEconomic, ModeMaintenance, ModeMaintenance},
		{ModeMaintenance, ModeStandard, ModeStandard},
		{ModeMaintenance, ModeEconomic, ModeEconomic},
		{ModeConfig, ModeStandard, ModeStandard},
		{ModeConfig, ModeEconomic, ModeConfig},
		{ModeConfig, ModeMaintenance, ModeConfig},
		{ModeMaintenance, ModeMaintenance, ModeMaintenance},
		{ModeStandard, ModeNone, ModeStandard},
		{ModeEconomic, Mode("BOGUS"), ModeEconomic},
	}
	for _, tt := range tests {
		t.Run(string(tt.current)+"->"+string(tt.requested), func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.current, tt.requested))
		})
	}
}

func TestApplyNeverRestsOnSentinel(t *testing.T) {
	modes := []Mode{ModeStandard, ModeEconomic, ModeMaintenance, ModeConfig, ModeNone}
	for _, from := range modes[:4] {
		for _, to := range modes {
			assert.NotEqual(t, ModeNone, Apply(from, to), "%s -> %s", from, to)
		}
	}
}

func TestGreenNeverLeavesStandardEconomicPair(t *testing.T) {
	mode := ModeStandard
	for i := 0; i < 10; i++ {
		mode = Apply(mode, Request(mode, mode, ButtonGreen))
		assert.Contains(t, []Mode{ModeStandard, ModeEconomic}, mode)
	}
	assert.Equal(t, ModeStandard, mode)
}

func TestModeFlags(t *testing.T) {
	assert.True(t, ModeStandard.Persists())
	assert.True(t, ModeEconomic.Persists())
	assert.False(t, ModeMaintenance.Persists())
	assert.True(t, ModeMaintenance.Samples())
	assert.False(t, ModeConfig.Samples())
	assert.False(t, ModeNone.Valid())
}
