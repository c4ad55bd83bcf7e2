package models

// Artwork status constants
const (
	StatusAvailable  = "available"
	StatusSold       = "sold"
	StatusExhibition = "exhibition"
	StatusPrivate    = "private"
)

// Artwork category constants
const (
	CategoryOriginal   = "original"
	CategoryCommission = "commission"
	CategoryExhibition = "exhibition"
)

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Domain types

type ArtworkImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
}

type Artwork struct {
	ID           int64          `json:"id,omitempty"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description"`
	Medium       string         `json:"medium"`
	Artform      string         `json:"artform"`
	CreationDate string         `json:"creation_date"`
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	Depth        *float64       `json:"depth,omitempty"`
	Price        *float64       `json:"price,omitempty"`
	Status       string         `json:"status"`
	Category     string         `json:"category"`
	Images       []ArtworkImage `json:"images"`
	Featured     bool           `json:"featured"`
}

// PrimaryImage returns the image flagged as primary, falling back to
// index 0 when none is flagged.
func (a Artwork) PrimaryImage() *ArtworkImage {
	for i := range a.Images {
		if a.Images[i].IsPrimary {
			return &a.Images[i]
		}
	}
	if len(a.Images) > 0 {
		return &a.Images[0]
	}
	return nil
}

type Exhibition struct {
	Year     string `json:"year"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Website   string `json:"website,omitempty"`
}

type ArtistInfo struct {
	ID           int64        `json:"id,omitempty"`
	Name         string       `json:"name"`
	Tagline      string       `json:"tagline"`
	Bio          string       `json:"bio"`
	Location     string       `json:"location"`
	Email        string       `json:"email"`
	Phone        *string      `json:"phone,omitempty"`
	Social       SocialLinks  `json:"social"`
	ProfileImage string       `json:"profile_image"`
	Exhibitions  []Exhibition `json:"exhibitions"`
}

type FAQ struct {
	ID       int64  `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

type User struct {
	ID           int64  `json:"id,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"`
	Role         string `json:"role"`
}

// Sanitized returns a copy safe to send to clients. The hash field is
// omitempty, so it disappears from the JSON entirely.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

type SiteSettings struct {
	ID               int64   `json:"id,omitempty"`
	AccentHue        float64 `json:"accent_hue"`
	AccentSaturation float64 `json:"accent_saturation"`
	AccentLightness  float64 `json:"accent_lightness"`
}

// Request types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
