// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"context"

	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

// DefaultSettings is the accent color served before an admin ever
// saves one.
var DefaultSettings = models.SiteSettings{
	AccentHue:        220,
	AccentSaturation: 70,
	AccentLightness:  50,
}

// SettingsService manages the singleton site-settings record.
type SettingsService struct {
	store *store.Store
}

func NewSettings(st *store.Store) *SettingsService {
	return &SettingsService{store: st}
}

func (s *SettingsService) coll() *store.Collection {
	return s.store.Collection(store.Settings)
}

// Get returns the stored settings, or the defaults when none exist
// yet. Public pages always get a usable accent color.
func (s *SettingsService) Get(ctx context.Context) (models.SiteSettings, error) {
	doc, err := s.coll().FindOne(ctx, nil)
	if err != nil {
		return models.SiteSettings{}, err
	}
	if doc == nil {
		return DefaultSettings, nil
	}
	return docTo[models.SiteSettings](doc)
}

// Upsert replaces the singleton wholesale, creating it on first call.
func (s *SettingsService) Upsert(ctx context.Context, settings models.SiteSettings) (models.SiteSettings, error) {
	doc, err := toDoc(settings)
	if err != nil {
		return models.SiteSettings{}, err
	}
	existing, err := s.coll().FindOne(ctx, nil)
	if err != nil {
		return models.SiteSettings{}, err
	}
	if existing == nil {
		created, err := s.coll().Create(ctx, doc)
		if err != nil {
			return models.SiteSettings{}, err
		}
		return docTo[models.SiteSettings](created)
	}
	if _, err := s.coll().ReplaceByID(ctx, existing.PublicID(), doc); err != nil {
		return models.SiteSettings{}, err
	}
	updated, err := s.coll().FindByID(ctx, existing.PublicID())
	if err != nil {
		return models.SiteSettings{}, err
	}
	return docTo[models.SiteSettings](updated)
}
