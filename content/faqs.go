// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"context"

	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

// FAQs manages the question/answer entries shown on the FAQ page.
type FAQs struct {
	store *store.Store
}

func NewFAQs(st *store.Store) *FAQs {
	return &FAQs{store: st}
}

func (f *FAQs) coll() *store.Collection {
	return f.store.Collection(store.FAQs)
}

// List returns all FAQs grouped by category, then by display order.
func (f *FAQs) List(ctx context.Context) ([]models.FAQ, error) {
	docs, err := f.coll().Find(nil).Sort("category", false).Sort("order", false).All(ctx)
	if err != nil {
		return nil, err
	}
	return docsTo[models.FAQ](docs)
}

func (f *FAQs) Create(ctx context.Context, faq models.FAQ) (models.FAQ, error) {
	doc, err := toDoc(faq)
	if err != nil {
		return models.FAQ{}, err
	}
	created, err := f.coll().Create(ctx, doc)
	if err != nil {
		return models.FAQ{}, err
	}
	return docTo[models.FAQ](created)
}

func (f *FAQs) Update(ctx context.Context, id int64, patch map[string]any) (models.FAQ, error) {
	n, err := f.coll().UpdateByID(ctx, id, store.Doc(patch))
	if err != nil {
		return models.FAQ{}, err
	}
	if n == 0 {
		return models.FAQ{}, ErrNotFound
	}
	doc, err := f.coll().FindByID(ctx, id)
	if err != nil {
		return models.FAQ{}, err
	}
	return docTo[models.FAQ](doc)
}

func (f *FAQs) Delete(ctx context.Context, id int64) error {
	n, err := f.coll().DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
