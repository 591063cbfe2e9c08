package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ReactionCacheEntry{}, Discovery{})
}

// ReactionCacheEntry stores one validated reasoned prediction keyed by the
// deterministic reactant fingerprint.
type ReactionCacheEntry struct {
	BaseModel
	Fingerprint string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_reaction_cache_fingerprint"`
	Reactants   datatypes.JSON `gorm:"type:jsonb;not null"`
	Environment string         `gorm:"type:varchar(50);not null"`
	Products    datatypes.JSON `gorm:"type:jsonb;not null"`
	Effects     datatypes.JSON `gorm:"type:jsonb;not null"`
	Explanation string         `gorm:"type:text;not null"`
	SubmittedBy string         `gorm:"type:varchar(255);not null;index"`
}

func (ReactionCacheEntry) TableName() string {
	return "reaction_cache_entries"
}

// Discovery records the first actor to ever produce an effect. EffectKey is
// globally unique, which is what makes the world-first claim atomic.
type Discovery struct {
	BaseModel
	EffectKey    string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_discoveries_effect_key"`
	DiscoveredBy string    `gorm:"type:varchar(255);not null;index"`
	DiscoveredAt time.Time `gorm:"not null"`
	CacheEntryID *uint     `gorm:"index"`
}

func (Discovery) TableName() string {
	return "discoveries"
}

func NewSchemaReactionCacheEntry(entry *reaction.CacheEntry) (*ReactionCacheEntry, error) {
	if entry == nil {
		return nil, nil
	}

	reactants, err := json.Marshal(entry.Reactants)
	if err != nil {
		return nil, err
	}
	products, err := json.Marshal(entry.Products)
	if err != nil {
		return nil, err
	}
	effects, err := json.Marshal(entry.Effects)
	if err != nil {
		return nil, err
	}

	return &ReactionCacheEntry{
		BaseModel: BaseModel{
			ID:        entry.ID,
			CreatedAt: entry.CreatedAt,
		},
		Fingerprint: entry.Fingerprint,
		Reactants:   datatypes.JSON(reactants),
		Environment: string(entry.Environment),
		Products:    datatypes.JSON(products),
		Effects:     datatypes.JSON(effects),
		Explanation: entry.Explanation,
		SubmittedBy: entry.SubmittedBy,
	}, nil
}

func (e *ReactionCacheEntry) EtoD() (*reaction.CacheEntry, error) {
	if e == nil {
		return nil, nil
	}

	var reactants []string
	if len(e.Reactants) > 0 {
		if err := json.Unmarshal(e.Reactants, &reactants); err != nil {
			return nil, err
		}
	}
	var products []reaction.Product
	if len(e.Products) > 0 {
		if err := json.Unmarshal(e.Products, &products); err != nil {
			return nil, err
		}
	}
	var effects []reaction.Effect
	if len(e.Effects) > 0 {
		if err := json.Unmarshal(e.Effects, &effects); err != nil {
			return nil, err
		}
	}

	return &reaction.CacheEntry{
		ID:          e.ID,
		Fingerprint: e.Fingerprint,
		Reactants:   reactants,
		Environment: reaction.Environment(e.Environment),
		Products:    products,
		Effects:     effects,
		Explanation: e.Explanation,
		SubmittedBy: e.SubmittedBy,
		CreatedAt:   e.CreatedAt,
	}, nil
}

func NewSchemaDiscovery(d *reaction.Discovery) *Discovery {
	if d == nil {
		return nil
	}

	return &Discovery{
		BaseModel: BaseModel{
			ID: d.ID,
		},
		EffectKey:    d.EffectKey,
		DiscoveredBy: d.DiscoveredBy,
		DiscoveredAt: d.DiscoveredAt,
		CacheEntryID: d.CacheEntryID,
	}
}

func (d *Discovery) EtoD() *reaction.Discovery {
	if d == nil {
		return nil
	}

	return &reaction.Discovery{
		ID:           d.ID,
		EffectKey:    d.EffectKey,
		DiscoveredBy: d.DiscoveredBy,
		DiscoveredAt: d.DiscoveredAt,
		CacheEntryID: d.CacheEntryID,
	}
}
