// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

// Seed installs sample content on a fresh installation so the site
// renders something before the first admin login. It is a no-op once
// any artwork exists.
func Seed(ctx context.Context, st *store.Store) error {
	n, err := st.Collection(store.Artworks).Count(ctx, nil)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	slog.Info("empty store, seeding sample content")

	artworks := NewArtworks(st)
	for _, art := range sampleArtworks {
		if _, err := artworks.Create(ctx, art); err != nil {
			return err
		}
	}
	if _, err := NewArtist(st).Upsert(ctx, sampleArtist); err != nil {
		return err
	}
	faqs := NewFAQs(st)
	for _, faq := range sampleFAQs {
		if _, err := faqs.Create(ctx, faq); err != nil {
			return err
		}
	}
	if _, err := NewSettings(st).Upsert(ctx, DefaultSettings); err != nil {
		return err
	}
	return nil
}

var sampleArtworks = []models.Artwork{
	{
		Title:        "Sunrise Over the Estuary",
		Slug:         "sunrise-over-the-estuary",
		Description:  "Early light breaking across tidal flats, painted on site over three mornings.",
		Medium:       "Oil on linen",
		Artform:      "Painting",
		CreationDate: "2025-03",
		Width:        90,
		Height:       60,
		Status:       models.StatusAvailable,
		Category:     models.CategoryOriginal,
		Featured:     true,
		Images: []models.ArtworkImage{
			{URL: "/uploads/samples/sunrise-estuary.jpg", Alt: "Sunrise over an estuary", IsPrimary: true},
		},
	},
	{
		Title:        "Harbor Study No. 4",
		Slug:         "harbor-study-no-4",
		Description:  "Fourth in a series of quick studies of the working harbor.",
		Medium:       "Gouache on paper",
		Artform:      "Painting",
		CreationDate: "2024-11",
		Width:        30,
		Height:       21,
		Status:       models.StatusSold,
		Category:     models.CategoryOriginal,
		Images: []models.ArtworkImage{
			{URL: "/uploads/samples/harbor-study-4.jpg", Alt: "Harbor with fishing boats"},
		},
	},
	{
		Title:        "Commissioned Portrait, E.",
		Slug:         "commissioned-portrait-e",
		Description:  "Private commission, shown with the sitter's permission.",
		Medium:       "Charcoal on toned paper",
		Artform:      "Drawing",
		CreationDate: "2025-01",
		Width:        42,
		Height:       59,
		Status:       models.StatusPrivate,
		Category:     models.CategoryCommission,
		Images: []models.ArtworkImage{
			{URL: "/uploads/samples/portrait-e.jpg", Alt: "Charcoal portrait"},
		},
	},
}

var sampleArtist = models.ArtistInfo{
	Name:     "Elena Marsh",
	Tagline:  "Landscapes and working waterfronts",
	Bio:      "Elena Marsh paints the coastline she grew up on, working primarily en plein air in oil and gouache.",
	Location: "Falmouth, UK",
	Email:    "studio@elenamarsh.example",
	Social: models.SocialLinks{
		Instagram: "https://instagram.com/elenamarsh.studio",
	},
	ProfileImage: "/uploads/samples/profile.jpg",
	Exhibitions: []models.Exhibition{
		{Year: "2025", Title: "Tideline", Location: "Harbour House Gallery, Falmouth"},
		{Year: "2023", Title: "Open Water (group show)", Location: "Newlyn Art Gallery"},
	},
}

var sampleFAQs = []models.FAQ{
	{Question: "Do you take commissions?", Answer: "Yes, a small number each year. Email the studio with a short description of what you have in mind.", Category: "Commissions", Order: 1},
	{Question: "How long does a commission take?", Answer: "Usually six to ten weeks depending on size and the current queue.", Category: "Commissions", Order: 2},
	{Question: "Do you ship internationally?", Answer: "Yes. Works are shipped flat or rolled, fully insured.", Category: "Shipping", Order: 1},
}
