package pubchem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chemezy-server/internal/config"
	"chemezy-server/internal/domain/reaction"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{
		PubChemBaseURL:     baseURL,
		PubChemTimeout:     2 * time.Second,
		PubChemMaxAttempts: 1,
	}
	return NewClient(cfg, zerolog.Nop())
}

const waterPropertyTable = `{
	"PropertyTable": {
		"Properties": [{
			"CID": 962,
			"MolecularFormula": "H2O",
			"MolecularWeight": "18.015",
			"HBondDonorCount": 1,
			"HBondAcceptorCount": 1
		}]
	}
}`

func TestFetchParsesStringMolecularWeight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/compound/fastformula/H2O/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(waterPropertyTable))
	}))
	defer srv.Close()

	facts := newTestClient(srv.URL).Fetch(context.Background(), []string{"H2O"})

	fact, ok := facts["H2O"]
	if !ok {
		t.Fatal("expected a fact for H2O")
	}
	if fact.Source != "pubchem" {
		t.Errorf("expected pubchem source, got %q", fact.Source)
	}
	if fact.MolecularWeight == nil || *fact.MolecularWeight != 18.015 {
		t.Errorf("expected molecular weight 18.015, got %v", fact.MolecularWeight)
	}
	if fact.HBondDonors != 1 || fact.HBondAcceptors != 1 {
		t.Errorf("unexpected hydrogen bond counts: %d donors, %d acceptors", fact.HBondDonors, fact.HBondAcceptors)
	}
}

func TestFetchFallsBackToNameNamespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/compound/fastformula/") {
			http.NotFound(w, r)
			return
		}
		if !strings.Contains(r.URL.Path, "/compound/name/water/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(waterPropertyTable))
	}))
	defer srv.Close()

	facts := newTestClient(srv.URL).Fetch(context.Background(), []string{"water"})

	fact := facts["water"]
	if fact.Source != "pubchem" {
		t.Fatalf("expected name namespace fallback to succeed, got source %q", fact.Source)
	}
	if fact.Formula != "H2O" {
		t.Errorf("expected resolved formula H2O, got %q", fact.Formula)
	}
}

func TestFetchDegradesToPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	facts := newTestClient(srv.URL).Fetch(context.Background(), []string{"Unobtainium", "H2O"})

	if len(facts) != 2 {
		t.Fatalf("every identifier must get a record, got %d", len(facts))
	}
	for identifier, fact := range facts {
		if fact.Source != reaction.FactSourceUnavailable {
			t.Errorf("expected unavailable placeholder for %q, got %q", identifier, fact.Source)
		}
		if fact.Formula != identifier {
			t.Errorf("placeholder must echo the identifier, got %q for %q", fact.Formula, identifier)
		}
	}
}

func TestFetchEmptyPropertyTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[]}}`))
	}))
	defer srv.Close()

	facts := newTestClient(srv.URL).Fetch(context.Background(), []string{"X"})

	if facts["X"].Source != reaction.FactSourceUnavailable {
		t.Errorf("empty property table must degrade to placeholder, got %q", facts["X"].Source)
	}
}

func TestCoerceFloat(t *testing.T) {
	if v, ok := coerceFloat([]byte(`42.5`)); !ok || v != 42.5 {
		t.Errorf("number coercion failed: %v %v", v, ok)
	}
	if v, ok := coerceFloat([]byte(`"42.5"`)); !ok || v != 42.5 {
		t.Errorf("string coercion failed: %v %v", v, ok)
	}
	if _, ok := coerceFloat([]byte(`"abc"`)); ok {
		t.Error("non-numeric string must not coerce")
	}
	if _, ok := coerceFloat(nil); ok {
		t.Error("empty payload must not coerce")
	}
}
