package reaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectMarshalFlattensVariant(t *testing.T) {
	effect := NewGasProductionEffect(GasProduction{
		GasType:   "hydrogen",
		Color:     "colorless",
		Intensity: 0.8,
		Duration:  5,
	})

	data, err := json.Marshal(effect)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "gas_production", decoded["effect_type"])
	require.Equal(t, "hydrogen", decoded["gas_type"])
}

func TestEffectRoundTrip(t *testing.T) {
	original := NewFoamProductionEffect(FoamProduction{
		Color:      "white",
		Density:    0.4,
		BubbleSize: "medium",
		Stability:  3,
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Effect
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, EffectFoamProduction, decoded.Type)
	require.NotNil(t, decoded.FoamProduction)
	require.Equal(t, "medium", decoded.FoamProduction.BubbleSize)
	require.NoError(t, decoded.Validate())
}

func TestEffectUnmarshalRejectsUnknownType(t *testing.T) {
	var effect Effect
	err := json.Unmarshal([]byte(`{"effect_type":"explosion","yield":1}`), &effect)
	require.Error(t, err)
}

func TestEffectValidateBounds(t *testing.T) {
	tests := []struct {
		name   string
		effect Effect
		valid  bool
	}{
		{
			name:   "intensity above one",
			effect: NewGasProductionEffect(GasProduction{GasType: "o2", Color: "clear", Intensity: 1.5, Duration: 1}),
			valid:  false,
		},
		{
			name:   "zero duration",
			effect: NewLightEmissionEffect(LightEmission{Color: "blue", Intensity: 0.5, Radius: 1, Duration: 0}),
			valid:  false,
		},
		{
			name:   "negative volume factor",
			effect: NewVolumeChangeEffect(VolumeChange{Factor: -2}),
			valid:  false,
		},
		{
			name:   "bad bubble size",
			effect: NewFoamProductionEffect(FoamProduction{Color: "white", Density: 1, BubbleSize: "huge", Stability: 1}),
			valid:  false,
		},
		{
			name:   "negative temperature delta is fine",
			effect: NewTemperatureChangeEffect(TemperatureChange{DeltaCelsius: -40}),
			valid:  true,
		},
		{
			name:   "spill within bounds",
			effect: NewSpillEffect(Spill{AmountPercentage: 0.3, SpreadRadius: 2}),
			valid:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.effect.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestEffectMissingPayload(t *testing.T) {
	effect := Effect{Type: EffectSpill}
	require.Error(t, effect.Validate())

	_, err := json.Marshal(Effect{Type: "bogus"})
	require.Error(t, err)
}

func TestEffectKeyMatchesVariantTag(t *testing.T) {
	effect := NewStateChangeEffect(StateChange{ProductReference: "NaCl", FinalState: "aqueous"})
	require.Equal(t, "state_change", effect.Key())
}
