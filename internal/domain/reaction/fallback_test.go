package reaction

import "testing"

func TestFallbackMetalWater(t *testing.T) {
	p := NewFallbackPredictor()

	result := p.Predict([]string{"Na", "H2O"}, EnvironmentNormal)
	if err := result.Validate(); err != nil {
		t.Fatalf("fallback produced invalid prediction: %v", err)
	}

	foundGas := false
	for _, effect := range result.Effects {
		if effect.Type == EffectGasProduction {
			foundGas = true
		}
	}
	if !foundGas {
		t.Error("metal plus water should evolve gas")
	}
}

func TestFallbackNeutralization(t *testing.T) {
	p := NewFallbackPredictor()

	result := p.Predict([]string{"HCl", "NaOH"}, EnvironmentNormal)
	if err := result.Validate(); err != nil {
		t.Fatalf("fallback produced invalid prediction: %v", err)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected water and salt, got %d products", len(result.Products))
	}
	if result.Products[0].Formula != "H2O" {
		t.Errorf("expected H2O first, got %s", result.Products[0].Formula)
	}
}

func TestFallbackDissolution(t *testing.T) {
	p := NewFallbackPredictor()

	result := p.Predict([]string{"NaCl", "H2O"}, EnvironmentNormal)
	if err := result.Validate(); err != nil {
		t.Fatalf("fallback produced invalid prediction: %v", err)
	}

	foundState := false
	for _, effect := range result.Effects {
		if effect.Type == EffectStateChange {
			foundState = true
			if effect.StateChange.FinalState != "aqueous" {
				t.Errorf("expected aqueous final state, got %s", effect.StateChange.FinalState)
			}
		}
	}
	if !foundState {
		t.Error("dissolution should report a state change")
	}
}

func TestFallbackGenericMixing(t *testing.T) {
	p := NewFallbackPredictor()

	result := p.Predict([]string{"SiO2", "Au"}, EnvironmentInertGas)
	if err := result.Validate(); err != nil {
		t.Fatalf("fallback produced invalid prediction: %v", err)
	}
	if len(result.Products) == 0 || len(result.Effects) == 0 {
		t.Error("fallback must never return empty products or effects")
	}
}

func TestFallbackNeverFails(t *testing.T) {
	p := NewFallbackPredictor()

	for _, env := range Environments() {
		result := p.Predict([]string{"??", ""}, env)
		if err := result.Validate(); err != nil {
			t.Errorf("fallback invalid in %s: %v", env, err)
		}
	}
}
