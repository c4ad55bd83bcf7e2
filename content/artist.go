// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"context"

	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

// Artist manages the singleton artist-info record. It is upserted,
// never deleted.
type Artist struct {
	store *store.Store
}

func NewArtist(st *store.Store) *Artist {
	return &Artist{store: st}
}

func (a *Artist) coll() *store.Collection {
	return a.store.Collection(store.Artist)
}

// Get returns the artist info, or ErrNotFound before first setup.
func (a *Artist) Get(ctx context.Context) (models.ArtistInfo, error) {
	doc, err := a.coll().FindOne(ctx, nil)
	if err != nil {
		return models.ArtistInfo{}, err
	}
	if doc == nil {
		return models.ArtistInfo{}, ErrNotFound
	}
	return docTo[models.ArtistInfo](doc)
}

// Upsert replaces the singleton wholesale, creating it on first call.
// The document count stays at exactly one, and optional fields omitted
// from info are cleared rather than carried over.
func (a *Artist) Upsert(ctx context.Context, info models.ArtistInfo) (models.ArtistInfo, error) {
	doc, err := toDoc(info)
	if err != nil {
		return models.ArtistInfo{}, err
	}
	existing, err := a.coll().FindOne(ctx, nil)
	if err != nil {
		return models.ArtistInfo{}, err
	}
	if existing == nil {
		created, err := a.coll().Create(ctx, doc)
		if err != nil {
			return models.ArtistInfo{}, err
		}
		return docTo[models.ArtistInfo](created)
	}
	if _, err := a.coll().ReplaceByID(ctx, existing.PublicID(), doc); err != nil {
		return models.ArtistInfo{}, err
	}
	updated, err := a.coll().FindByID(ctx, existing.PublicID())
	if err != nil {
		return models.ArtistInfo{}, err
	}
	return docTo[models.ArtistInfo](updated)
}
