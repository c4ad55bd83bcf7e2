// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strings"
)

// Validation returns the first violated constraint as an error so the
// API layer can surface a single actionable message.

func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusSold, StatusExhibition, StatusPrivate:
		return true
	}
	return false
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryOriginal, CategoryCommission, CategoryExhibition:
		return true
	}
	return false
}

func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

func (a Artwork) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("title is required")
	}
	if a.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if strings.ContainsAny(a.Slug, " /") {
		return fmt.Errorf("slug must not contain spaces or slashes")
	}
	if !ValidStatus(a.Status) {
		return fmt.Errorf("status must be one of: available, sold, exhibition, private")
	}
	if !ValidCategory(a.Category) {
		return fmt.Errorf("category must be one of: original, commission, exhibition")
	}
	if a.Width < 0 || a.Height < 0 {
		return fmt.Errorf("dimensions must not be negative")
	}
	return nil
}

func (a ArtistInfo) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	if a.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

func (f FAQ) Validate() error {
	if f.Question == "" {
		return fmt.Errorf("question is required")
	}
	if f.Answer == "" {
		return fmt.Errorf("answer is required")
	}
	return nil
}

func (s SiteSettings) Validate() error {
	if s.AccentHue < 0 || s.AccentHue > 360 {
		return fmt.Errorf("accent_hue must be between 0 and 360")
	}
	if s.AccentSaturation < 0 || s.AccentSaturation > 100 {
		return fmt.Errorf("accent_saturation must be between 0 and 100")
	}
	if s.AccentLightness < 0 || s.AccentLightness > 100 {
		return fmt.Errorf("accent_lightness must be between 0 and 100")
	}
	return nil
}

func (r CreateUserRequest) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Role != "" && !ValidRole(r.Role) {
		return fmt.Errorf("role must be one of: user, admin")
	}
	return nil
}
