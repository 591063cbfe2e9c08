package reaction

import "testing"

func TestFingerprintIgnoresOrderAndCase(t *testing.T) {
	a := Fingerprint([]string{"h2o", "NaCl"}, EnvironmentNormal)
	b := Fingerprint([]string{"NACL", "  H2O "}, EnvironmentNormal)

	if a != b {
		t.Errorf("expected identical fingerprints, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestFingerprintDistinguishesEnvironment(t *testing.T) {
	a := Fingerprint([]string{"H2O", "NA"}, EnvironmentNormal)
	b := Fingerprint([]string{"H2O", "NA"}, EnvironmentVacuum)

	if a == b {
		t.Error("different environments must not collide")
	}
}

func TestFingerprintDistinguishesReactants(t *testing.T) {
	a := Fingerprint([]string{"H2O"}, EnvironmentNormal)
	b := Fingerprint([]string{"H2O", "H2O"}, EnvironmentNormal)

	if a == b {
		t.Error("different reactant multisets must not collide")
	}
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint([]string{"HCL", "NAOH"}, EnvironmentBasic)
	b := Fingerprint([]string{"HCL", "NAOH"}, EnvironmentBasic)

	if a != b {
		t.Error("fingerprint must be deterministic")
	}
}
