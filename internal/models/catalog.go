package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a pump truck listing shown on the public site.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	BoomLength  string    `json:"boom_length"`
	Output      string    `json:"output"`
	Year        int       `json:"year"`
	Price       string    `json:"price"` // display string, e.g. "POA" or "€245,000"
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Region is one entry of the regional navigation: a sales region with the
// cities it is promoted for.
type Region struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline"`
	Cities    []string  `json:"cities"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
