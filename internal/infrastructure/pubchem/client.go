// Package pubchem retrieves factual compound data from the PubChem PUG REST
// API to ground reaction predictions. Retrieval is strictly best-effort: a
// failed lookup degrades to a placeholder record and never blocks the caller.
package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"

	"chemezy-server/internal/config"
	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/infrastructure/metrics"
	"chemezy-server/internal/utils/httpclients"
)

const sourceName = "pubchem"

// Client implements reaction.FactRetriever against PubChem.
type Client struct {
	http        *resty.Client
	baseURL     string
	maxAttempts int
	log         zerolog.Logger
}

var _ reaction.FactRetriever = (*Client)(nil)

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	http := httpclients.NewClient("pubchem")
	http.SetTimeout(cfg.PubChemTimeout)

	return &Client{
		http:        http,
		baseURL:     cfg.PubChemBaseURL,
		maxAttempts: cfg.PubChemMaxAttempts,
		log:         log.With().Str("component", "pubchem_client").Logger(),
	}
}

// propertyResponse is the subset of the PUG REST property table we consume.
// MolecularWeight arrives as a JSON string in some API versions and as a
// number in others, hence the RawMessage.
type propertyResponse struct {
	PropertyTable struct {
		Properties []struct {
			CID                int             `json:"CID"`
			MolecularFormula   string          `json:"MolecularFormula"`
			MolecularWeight    json.RawMessage `json:"MolecularWeight"`
			HBondDonorCount    int             `json:"HBondDonorCount"`
			HBondAcceptorCount int             `json:"HBondAcceptorCount"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

// Fetch looks up all identifiers concurrently. Every identifier gets a
// record: real data when PubChem answers, a placeholder marked unavailable
// otherwise.
func (c *Client) Fetch(ctx context.Context, identifiers []string) map[string]reaction.CompoundFact {
	facts := make([]reaction.CompoundFact, len(identifiers))

	g, ctx := errgroup.WithContext(ctx)
	for i, identifier := range identifiers {
		i, identifier := i, identifier
		g.Go(func() error {
			facts[i] = c.fetchOne(ctx, identifier)
			return nil
		})
	}
	_ = g.Wait()

	result := make(map[string]reaction.CompoundFact, len(identifiers))
	for i, identifier := range identifiers {
		result[identifier] = facts[i]
	}
	return result
}

func (c *Client) fetchOne(ctx context.Context, identifier string) reaction.CompoundFact {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(1<<(attempt-2)) * time.Second
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
			case <-time.After(backoff):
			}
			if ctx.Err() != nil {
				break
			}
		}

		fact, err := c.lookup(ctx, identifier)
		if err == nil {
			metrics.FactRequestsTotal.WithLabelValues("ok").Inc()
			return *fact
		}
		lastErr = err
	}

	metrics.FactRequestsTotal.WithLabelValues("unavailable").Inc()
	c.log.Warn().
		Err(lastErr).
		Str("identifier", identifier).
		Msg("compound fact lookup failed, using placeholder")

	return reaction.CompoundFact{
		Formula: identifier,
		Source:  reaction.FactSourceUnavailable,
	}
}

// lookup tries the formula namespace first and falls back to the name
// namespace, mirroring how players identify chemicals.
func (c *Client) lookup(ctx context.Context, identifier string) (*reaction.CompoundFact, error) {
	paths := []string{
		fmt.Sprintf("%s/compound/fastformula/%s/property/MolecularFormula,MolecularWeight,HBondDonorCount,HBondAcceptorCount/JSON", c.baseURL, url.PathEscape(identifier)),
		fmt.Sprintf("%s/compound/name/%s/property/MolecularFormula,MolecularWeight,HBondDonorCount,HBondAcceptorCount/JSON", c.baseURL, url.PathEscape(identifier)),
	}

	var lastErr error
	for _, path := range paths {
		var payload propertyResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&payload).
			Get(path)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.IsError() {
			lastErr = fmt.Errorf("pubchem returned status %d", resp.StatusCode())
			continue
		}
		if len(payload.PropertyTable.Properties) == 0 {
			lastErr = fmt.Errorf("pubchem returned no properties for %q", identifier)
			continue
		}

		prop := payload.PropertyTable.Properties[0]
		fact := &reaction.CompoundFact{
			Formula:        prop.MolecularFormula,
			HBondDonors:    prop.HBondDonorCount,
			HBondAcceptors: prop.HBondAcceptorCount,
			Source:         sourceName,
		}
		if fact.Formula == "" {
			fact.Formula = identifier
		}
		if weight, ok := coerceFloat(prop.MolecularWeight); ok {
			fact.MolecularWeight = &weight
		}
		return fact, nil
	}
	return nil, lastErr
}

func coerceFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, true
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.ParseFloat(text, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
