// Package dashboard produces the admin console widget data. The numbers are
// mock series seeded from the calendar date, so the console looks alive and
// stays stable across reloads until the real Analytics integration consumes
// the connected Google account.
package dashboard

import (
	"math/rand"
	"time"
)

const trafficDays = 14

type AnalyticsWidget struct {
	Visitors          int     `json:"visitors"`
	Pageviews         int     `json:"pageviews"`
	AvgSessionSeconds int     `json:"avg_session_seconds"`
	BounceRate        float64 `json:"bounce_rate"`
}

type KeywordRanking struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	Change   int    `json:"change"` // positions gained since last week, negative is a drop
}

type SEOWidget struct {
	Keywords []KeywordRanking `json:"keywords"`
}

type DayTraffic struct {
	Date     string `json:"date"`
	Organic  int    `json:"organic"`
	Direct   int    `json:"direct"`
	Referral int    `json:"referral"`
}

type TrafficWidget struct {
	Days []DayTraffic `json:"days"`
}

type ConversionsWidget struct {
	QuoteRequests  int     `json:"quote_requests"`
	PhoneCalls     int     `json:"phone_calls"`
	BrochureViews  int     `json:"brochure_views"`
	ConversionRate float64 `json:"conversion_rate"`
}

type Overview struct {
	Analytics   AnalyticsWidget   `json:"analytics"`
	SEO         SEOWidget         `json:"seo"`
	Traffic     TrafficWidget     `json:"traffic"`
	Conversions ConversionsWidget `json:"conversions"`
}

var trackedKeywords = []string{
	"concrete pump truck for sale",
	"used boom pump",
	"putzmeister pump hire",
	"schwing s36x price",
	"concrete pumping dublin",
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Overview returns all four widgets for the given day.
func (s *Service) Overview(day time.Time) Overview {
	day = day.Truncate(24 * time.Hour)
	rng := rand.New(rand.NewSource(day.Unix()))

	return Overview{
		Analytics:   s.analytics(rng),
		SEO:         s.seo(rng),
		Traffic:     s.traffic(rng, day),
		Conversions: s.conversions(rng),
	}
}

func (s *Service) analytics(rng *rand.Rand) AnalyticsWidget {
	visitors := 400 + rng.Intn(300)
	return AnalyticsWidget{
		Visitors:          visitors,
		Pageviews:         visitors*2 + rng.Intn(visitors),
		AvgSessionSeconds: 90 + rng.Intn(120),
		BounceRate:        0.35 + rng.Float64()*0.25,
	}
}

func (s *Service) seo(rng *rand.Rand) SEOWidget {
	keywords := make([]KeywordRanking, 0, len(trackedKeywords))
	for _, kw := range trackedKeywords {
		keywords = append(keywords, KeywordRanking{
			Keyword:  kw,
			Position: 1 + rng.Intn(20),
			Change:   rng.Intn(7) - 3,
		})
	}
	return SEOWidget{Keywords: keywords}
}

func (s *Service) traffic(rng *rand.Rand, day time.Time) TrafficWidget {
	days := make([]DayTraffic, 0, trafficDays)
	for i := trafficDays - 1; i >= 0; i-- {
		days = append(days, DayTraffic{
			Date:     day.AddDate(0, 0, -i).Format("2006-01-02"),
			Organic:  120 + rng.Intn(180),
			Direct:   40 + rng.Intn(60),
			Referral: 10 + rng.Intn(40),
		})
	}
	return TrafficWidget{Days: days}
}

func (s *Service) conversions(rng *rand.Rand) ConversionsWidget {
	quotes := 5 + rng.Intn(15)
	calls := 8 + rng.Intn(20)
	return ConversionsWidget{
		QuoteRequests:  quotes,
		PhoneCalls:     calls,
		BrochureViews:  30 + rng.Intn(80),
		ConversionRate: 0.01 + rng.Float64()*0.04,
	}
}
