package reaction

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Fingerprint derives the deterministic cache key for a reactant set in a
// given environment. Identifier order and casing never affect the result:
// identifiers are trimmed, uppercased and sorted before hashing, so
// ["h2o", "NaCl"] and ["NACL", "H2O"] collapse to the same key.
func Fingerprint(reactants []string, environment Environment) string {
	normalized := make([]string, 0, len(reactants))
	for _, r := range reactants {
		normalized = append(normalized, strings.ToUpper(strings.TrimSpace(r)))
	}
	sort.Strings(normalized)

	payload, _ := json.Marshal(struct {
		Environment string   `json:"environment"`
		Reactants   []string `json:"reactants"`
	}{
		Environment: strings.TrimSpace(string(environment)),
		Reactants:   normalized,
	})

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
