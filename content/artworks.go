// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"context"
	"encoding/json"

	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

// relatedLimit caps the related-artworks query.
const relatedLimit = 3

// Artworks is the gallery content service.
type Artworks struct {
	store *store.Store
}

func NewArtworks(st *store.Store) *Artworks {
	return &Artworks{store: st}
}

func (a *Artworks) coll() *store.Collection {
	return a.store.Collection(store.Artworks)
}

// ListOptions filters the artwork listing. Empty fields match
// everything.
type ListOptions struct {
	Category string
	Status   string
	Featured *bool
}

// List returns artworks newest-first by creation date.
func (a *Artworks) List(ctx context.Context, opts ListOptions) ([]models.Artwork, error) {
	filter := store.Filter{}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.Featured != nil {
		filter["featured"] = *opts.Featured
	}
	docs, err := a.coll().Find(filter).Sort("creation_date", true).All(ctx)
	if err != nil {
		return nil, err
	}
	return docsTo[models.Artwork](docs)
}

// Featured returns the artworks flagged for the landing page.
func (a *Artworks) Featured(ctx context.Context) ([]models.Artwork, error) {
	featured := true
	return a.List(ctx, ListOptions{Featured: &featured})
}

// BySlug looks an artwork up by its unique slug.
func (a *Artworks) BySlug(ctx context.Context, slug string) (models.Artwork, error) {
	doc, err := a.coll().FindOne(ctx, store.Filter{"slug": slug})
	if err != nil {
		return models.Artwork{}, err
	}
	if doc == nil {
		return models.Artwork{}, ErrNotFound
	}
	return docTo[models.Artwork](doc)
}

// ByID looks an artwork up by its numeric public id.
func (a *Artworks) ByID(ctx context.Context, id int64) (models.Artwork, error) {
	doc, err := a.coll().FindByID(ctx, id)
	if err != nil {
		return models.Artwork{}, err
	}
	if doc == nil {
		return models.Artwork{}, ErrNotFound
	}
	return docTo[models.Artwork](doc)
}

// Related returns up to three other artworks in the same category as
// the slug's artwork, never including the artwork itself.
func (a *Artworks) Related(ctx context.Context, slug string) ([]models.Artwork, error) {
	base, err := a.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	docs, err := a.coll().Find(store.Filter{"category": base.Category}).All(ctx)
	if err != nil {
		return nil, err
	}
	all, err := docsTo[models.Artwork](docs)
	if err != nil {
		return nil, err
	}
	related := make([]models.Artwork, 0, relatedLimit)
	for _, art := range all {
		if art.Slug == slug {
			continue
		}
		related = append(related, art)
		if len(related) == relatedLimit {
			break
		}
	}
	return related, nil
}

// Create stores a new artwork. The slug must be unique.
func (a *Artworks) Create(ctx context.Context, art models.Artwork) (models.Artwork, error) {
	existing, err := a.coll().FindOne(ctx, store.Filter{"slug": art.Slug})
	if err != nil {
		return models.Artwork{}, err
	}
	if existing != nil {
		return models.Artwork{}, ErrSlugTaken
	}
	art.Images = normalizePrimary(art.Images)
	doc, err := toDoc(art)
	if err != nil {
		return models.Artwork{}, err
	}
	created, err := a.coll().Create(ctx, doc)
	if err != nil {
		return models.Artwork{}, err
	}
	return docTo[models.Artwork](created)
}

// Update applies a partial patch to the artwork with the given numeric
// id and returns the updated record.
func (a *Artworks) Update(ctx context.Context, id int64, patch map[string]any) (models.Artwork, error) {
	if slug, ok := patch["slug"].(string); ok {
		other, err := a.coll().FindOne(ctx, store.Filter{"slug": slug})
		if err != nil {
			return models.Artwork{}, err
		}
		if other != nil && other.PublicID() != id {
			return models.Artwork{}, ErrSlugTaken
		}
	}
	if raw, ok := patch["images"]; ok {
		patch["images"] = normalizePrimaryRaw(raw)
	}
	n, err := a.coll().UpdateByID(ctx, id, store.Doc(patch))
	if err != nil {
		return models.Artwork{}, err
	}
	if n == 0 {
		return models.Artwork{}, ErrNotFound
	}
	return a.ByID(ctx, id)
}

// Delete removes the artwork with the given numeric id.
func (a *Artworks) Delete(ctx context.Context, id int64) error {
	n, err := a.coll().DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizePrimary keeps at most one primary image: the first one
// flagged wins, later flags are cleared. The detail view falls back
// to index 0 when none is flagged.
func normalizePrimary(images []models.ArtworkImage) []models.ArtworkImage {
	seen := false
	for i := range images {
		if images[i].IsPrimary {
			if seen {
				images[i].IsPrimary = false
			}
			seen = true
		}
	}
	return images
}

// normalizePrimaryRaw applies the same rule to an untyped patch value.
// Unparseable input is returned as-is; validation happens upstream.
func normalizePrimaryRaw(raw any) any {
	buf, err := json.Marshal(raw)
	if err != nil {
		return raw
	}
	var images []models.ArtworkImage
	if err := json.Unmarshal(buf, &images); err != nil {
		return raw
	}
	images = normalizePrimary(images)
	buf, err = json.Marshal(images)
	if err != nil {
		return raw
	}
	var out any
	if err := json.Unmarshal(buf, &out); err != nil {
		return raw
	}
	return out
}
