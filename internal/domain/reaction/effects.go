package reaction

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// EffectType discriminates the closed set of observable effect variants.
type EffectType string

const (
	EffectGasProduction     EffectType = "gas_production"
	EffectLightEmission     EffectType = "light_emission"
	EffectVolumeChange      EffectType = "volume_change"
	EffectSpill             EffectType = "spill"
	EffectStateChange       EffectType = "state_change"
	EffectTemperatureChange EffectType = "temperature_change"
	EffectTextureChange     EffectType = "texture_change"
	EffectFoamProduction    EffectType = "foam_production"
)

type GasProduction struct {
	GasType   string  `json:"gas_type" validate:"required"`
	Color     string  `json:"color" validate:"required"`
	Intensity float64 `json:"intensity" validate:"gte=0,lte=1"`
	Duration  float64 `json:"duration" validate:"gt=0"`
}

type LightEmission struct {
	Color     string  `json:"color" validate:"required"`
	Intensity float64 `json:"intensity" validate:"gte=0,lte=1"`
	Radius    float64 `json:"radius" validate:"gt=0"`
	Duration  float64 `json:"duration" validate:"gt=0"`
}

type VolumeChange struct {
	Factor float64 `json:"factor" validate:"gt=0"`
}

type Spill struct {
	AmountPercentage float64 `json:"amount_percentage" validate:"gte=0,lte=1"`
	SpreadRadius     float64 `json:"spread_radius" validate:"gt=0"`
}

type StateChange struct {
	ProductReference string `json:"product_reference" validate:"required"`
	FinalState       string `json:"final_state" validate:"required"`
}

type TemperatureChange struct {
	DeltaCelsius float64 `json:"delta_celsius"`
}

type TextureChange struct {
	ProductReference string  `json:"product_reference" validate:"required"`
	TextureType      string  `json:"texture_type" validate:"required"`
	Color            string  `json:"color" validate:"required"`
	Viscosity        float64 `json:"viscosity" validate:"gte=0,lte=1"`
}

type FoamProduction struct {
	Color      string  `json:"color" validate:"required"`
	Density    float64 `json:"density" validate:"gt=0"`
	BubbleSize string  `json:"bubble_size" validate:"oneof=small medium large"`
	Stability  float64 `json:"stability" validate:"gt=0"`
}

// Effect is a tagged union over the eight effect variants. Exactly one
// payload pointer matching Type is non-nil.
type Effect struct {
	Type EffectType

	GasProduction     *GasProduction
	LightEmission     *LightEmission
	VolumeChange      *VolumeChange
	Spill             *Spill
	StateChange       *StateChange
	TemperatureChange *TemperatureChange
	TextureChange     *TextureChange
	FoamProduction    *FoamProduction
}

// Key returns the ledger identity of the effect. Two effects with the same
// variant tag are the same discoverable phenomenon.
func (e Effect) Key() string {
	return string(e.Type)
}

func (e Effect) payload() (any, error) {
	switch e.Type {
	case EffectGasProduction:
		if e.GasProduction != nil {
			return e.GasProduction, nil
		}
	case EffectLightEmission:
		if e.LightEmission != nil {
			return e.LightEmission, nil
		}
	case EffectVolumeChange:
		if e.VolumeChange != nil {
			return e.VolumeChange, nil
		}
	case EffectSpill:
		if e.Spill != nil {
			return e.Spill, nil
		}
	case EffectStateChange:
		if e.StateChange != nil {
			return e.StateChange, nil
		}
	case EffectTemperatureChange:
		if e.TemperatureChange != nil {
			return e.TemperatureChange, nil
		}
	case EffectTextureChange:
		if e.TextureChange != nil {
			return e.TextureChange, nil
		}
	case EffectFoamProduction:
		if e.FoamProduction != nil {
			return e.FoamProduction, nil
		}
	default:
		return nil, fmt.Errorf("unknown effect type %q", e.Type)
	}
	return nil, fmt.Errorf("effect %q has no payload", e.Type)
}

// Validate checks the variant payload against its field bounds.
func (e Effect) Validate() error {
	payload, err := e.payload()
	if err != nil {
		return err
	}
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("effect %q: %w", e.Type, err)
	}
	return nil
}

// MarshalJSON flattens the union to the wire shape
// {"effect_type": ..., <variant fields>...}.
func (e Effect) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EffectGasProduction:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*GasProduction
		}{e.Type, e.GasProduction})
	case EffectLightEmission:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*LightEmission
		}{e.Type, e.LightEmission})
	case EffectVolumeChange:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*VolumeChange
		}{e.Type, e.VolumeChange})
	case EffectSpill:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*Spill
		}{e.Type, e.Spill})
	case EffectStateChange:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*StateChange
		}{e.Type, e.StateChange})
	case EffectTemperatureChange:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*TemperatureChange
		}{e.Type, e.TemperatureChange})
	case EffectTextureChange:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*TextureChange
		}{e.Type, e.TextureChange})
	case EffectFoamProduction:
		return json.Marshal(struct {
			EffectType EffectType `json:"effect_type"`
			*FoamProduction
		}{e.Type, e.FoamProduction})
	default:
		return nil, fmt.Errorf("cannot marshal unknown effect type %q", e.Type)
	}
}

// UnmarshalJSON reads the wire shape back into the union, rejecting unknown
// variant tags.
func (e *Effect) UnmarshalJSON(data []byte) error {
	var head struct {
		EffectType EffectType `json:"effect_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.EffectType {
	case EffectGasProduction:
		var p GasProduction
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, GasProduction: &p}
	case EffectLightEmission:
		var p LightEmission
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, LightEmission: &p}
	case EffectVolumeChange:
		var p VolumeChange
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, VolumeChange: &p}
	case EffectSpill:
		var p Spill
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, Spill: &p}
	case EffectStateChange:
		var p StateChange
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, StateChange: &p}
	case EffectTemperatureChange:
		var p TemperatureChange
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, TemperatureChange: &p}
	case EffectTextureChange:
		var p TextureChange
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, TextureChange: &p}
	case EffectFoamProduction:
		var p FoamProduction
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*e = Effect{Type: head.EffectType, FoamProduction: &p}
	default:
		return fmt.Errorf("unknown effect_type %q", head.EffectType)
	}
	return nil
}

// NewGasProductionEffect wraps a GasProduction payload.
func NewGasProductionEffect(p GasProduction) Effect {
	return Effect{Type: EffectGasProduction, GasProduction: &p}
}

// NewLightEmissionEffect wraps a LightEmission payload.
func NewLightEmissionEffect(p LightEmission) Effect {
	return Effect{Type: EffectLightEmission, LightEmission: &p}
}

// NewVolumeChangeEffect wraps a VolumeChange payload.
func NewVolumeChangeEffect(p VolumeChange) Effect {
	return Effect{Type: EffectVolumeChange, VolumeChange: &p}
}

// NewSpillEffect wraps a Spill payload.
func NewSpillEffect(p Spill) Effect {
	return Effect{Type: EffectSpill, Spill: &p}
}

// NewStateChangeEffect wraps a StateChange payload.
func NewStateChangeEffect(p StateChange) Effect {
	return Effect{Type: EffectStateChange, StateChange: &p}
}

// NewTemperatureChangeEffect wraps a TemperatureChange payload.
func NewTemperatureChangeEffect(p TemperatureChange) Effect {
	return Effect{Type: EffectTemperatureChange, TemperatureChange: &p}
}

// NewTextureChangeEffect wraps a TextureChange payload.
func NewTextureChangeEffect(p TextureChange) Effect {
	return Effect{Type: EffectTextureChange, TextureChange: &p}
}

// NewFoamProductionEffect wraps a FoamProduction payload.
func NewFoamProductionEffect(p FoamProduction) Effect {
	return Effect{Type: EffectFoamProduction, FoamProduction: &p}
}
