package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	t.Parallel()

	s := NewService()
	day := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("deterministic for a given day", func(t *testing.T) {
		first := s.Overview(day)
		second := s.Overview(day.Add(3 * time.Hour))

		assert.Equal(t, first, second, "same calendar day must yield the same widgets")
	})

	t.Run("different days differ", func(t *testing.T) {
		a := s.Overview(day)
		b := s.Overview(day.AddDate(0, 0, 1))

		assert.NotEqual(t, a, b)
	})

	t.Run("shapes are plausible", func(t *testing.T) {
		o := s.Overview(day)

		assert.Positive(t, o.Analytics.Visitors)
		assert.GreaterOrEqual(t, o.Analytics.Pageviews, o.Analytics.Visitors)
		assert.InDelta(t, 0.5, o.Analytics.BounceRate, 0.5)

		require.Len(t, o.SEO.Keywords, len(trackedKeywords))
		for _, kw := range o.SEO.Keywords {
			assert.Positive(t, kw.Position)
		}

		require.Len(t, o.Traffic.Days, trafficDays)
		last := o.Traffic.Days[len(o.Traffic.Days)-1]
		assert.Equal(t, "2026-03-14", last.Date, "series must end on the requested day")

		assert.Positive(t, o.Conversions.QuoteRequests)
	})
}
