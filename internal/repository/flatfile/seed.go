package flatfile

import (
	"time"

	"github.com/google/uuid"

	"github.com/boomtruck/siteapi/internal/models"
)

// seed writes the default site content for collections whose file does not
// exist yet. Existing files, including empty ones, are left alone.
func (s *Storage) seed() error {
	now := time.Now()

	if !s.product.col.exists() {
		if err := s.product.col.write(seedProducts(now)); err != nil {
			return err
		}
	}
	if !s.region.col.exists() {
		if err := s.region.col.write(seedRegions(now)); err != nil {
			return err
		}
	}
	return nil
}

func seedProducts(now time.Time) []models.Product {
	return []models.Product{
		{
			ID:          uuid.New(),
			Slug:        "putzmeister-m42-5",
			Name:        "Putzmeister M42-5",
			Brand:       "Putzmeister",
			BoomLength:  "42 m",
			Output:      "160 m³/h",
			Year:        2019,
			Price:       "POA",
			Description: "Five-section roll-and-fold boom on a four-axle chassis, full service history.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New(),
			Slug:        "schwing-s36x",
			Name:        "Schwing S36X",
			Brand:       "Schwing",
			BoomLength:  "36 m",
			Output:      "163 m³/h",
			Year:        2021,
			Price:       "€245,000",
			Description: "Overhead roll-and-fold boom, low hours, ideal for residential pours.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New(),
			Slug:        "zoomlion-49x-6rz",
			Name:        "Zoomlion 49X-6RZ",
			Brand:       "Zoomlion",
			BoomLength:  "49 m",
			Output:      "170 m³/h",
			Year:        2022,
			Price:       "€310,000",
			Description: "Six-section RZ boom with single-side support, as new condition.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func seedRegions(now time.Time) []models.Region {
	return []models.Region{
		{
			ID:        uuid.New(),
			Slug:      "leinster",
			Name:      "Leinster",
			Headline:  "Concrete pump trucks for sale and hire across Leinster",
			Cities:    []string{"Dublin", "Kilkenny", "Wexford"},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New(),
			Slug:      "munster",
			Name:      "Munster",
			Headline:  "Serving Munster with delivery and commissioning included",
			Cities:    []string{"Cork", "Limerick", "Waterford"},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New(),
			Slug:      "northern-ireland",
			Name:      "Northern Ireland",
			Headline:  "Sterling pricing and NI registration handled for you",
			Cities:    []string{"Belfast", "Derry", "Newry"},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
