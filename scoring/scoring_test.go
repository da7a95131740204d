package scoring

import (
	"math"
	"testing"

	"github.com/homefinder/eih-site-explorer/models"
	"github.com/stretchr/testify/assert"
)

func site(sentiment, library, hospital float64) models.Site {
	return models.Site{
		Name:                "Test Site",
		Location:            models.NewGeoPoint(-121.88, 37.33),
		ProximityToLibrary:  library,
		ProximityToHospital: hospital,
		SentimentScore:      sentiment,
	}
}

func TestScore(t *testing.T) {
	defaults := DefaultWeights()

	t.Run("best possible site", func(t *testing.T) {
		got := Score(site(100, 0, 0), defaults)

		assert.InDelta(t, 1.0, got, 1e-9)
		assert.Equal(t, TagIdeal, TagFor(got))
	})

	t.Run("worst possible site", func(t *testing.T) {
		got := Score(site(0, 1000, 1000), defaults)

		assert.InDelta(t, 0.0, got, 1e-9)
		assert.Equal(t, TagPoor, TagFor(got))
	})

	t.Run("stays in unit range for normalized inputs", func(t *testing.T) {
		cases := []struct {
			name      string
			sentiment float64
			library   float64
			hospital  float64
		}{
			{"mid everything", 50, 500, 500},
			{"sentiment only", 100, 1000, 1000},
			{"library only", 0, 0, 1000},
			{"beyond the cap", 80, 5000, 12000},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got := Score(site(tc.sentiment, tc.library, tc.hospital), defaults)

				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 1.0)
			})
		}
	})

	t.Run("monotonic in sentiment", func(t *testing.T) {
		low := Score(site(40, 600, 600), defaults)
		high := Score(site(60, 600, 600), defaults)

		assert.Greater(t, high, low)
	})

	t.Run("monotonic in proximity", func(t *testing.T) {
		far := Score(site(50, 900, 900), defaults)
		near := Score(site(50, 100, 900), defaults)

		assert.Greater(t, near, far)

		nearHospital := Score(site(50, 900, 100), defaults)
		assert.Greater(t, nearHospital, far)
	})

	t.Run("distances beyond 1000m clamp to the floor", func(t *testing.T) {
		atCap := Score(site(50, 1000, 500), defaults)

		for _, d := range []float64{1000.0001, 2000, 50000} {
			assert.Equal(t, atCap, Score(site(50, d, 500), defaults))
		}
	})

	t.Run("out-of-range sentiment passes through", func(t *testing.T) {
		got := Score(site(150, 0, 0), defaults)

		assert.Greater(t, got, 1.0)
	})

	t.Run("negative proximity inflates the score", func(t *testing.T) {
		baseline := Score(site(50, 0, 500), defaults)
		inflated := Score(site(50, -500, 500), defaults)

		assert.Greater(t, inflated, baseline)
	})

	t.Run("unnormalized weights are applied as given", func(t *testing.T) {
		heavy := Weights{Sentiment: 1, Library: 1, Hospital: 1}
		got := Score(site(100, 0, 0), heavy)

		assert.InDelta(t, 3.0, got, 1e-9)
	})
}

func TestTagFor(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected Tag
	}{
		{"exactly ideal threshold", 0.75, TagIdeal},
		{"just below ideal", math.Nextafter(0.75, 0), TagModerate},
		{"exactly moderate threshold", 0.5, TagModerate},
		{"just below moderate", math.Nextafter(0.5, 0), TagPoor},
		{"well above ideal", 0.99, TagIdeal},
		{"zero", 0, TagPoor},
		{"above one", 1.4, TagIdeal},
		{"negative", -0.2, TagPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TagFor(tt.score))
		})
	}
}

func TestScoreAll(t *testing.T) {
	sites := []models.Site{
		site(100, 0, 0),
		site(0, 1000, 1000),
	}

	scored := ScoreAll(sites, DefaultWeights())

	assert.Len(t, scored, 2)
	assert.InDelta(t, 1.0, scored[0].IIS, 1e-9)
	assert.Equal(t, TagIdeal, scored[0].Tag)
	assert.InDelta(t, 0.0, scored[1].IIS, 1e-9)
	assert.Equal(t, TagPoor, scored[1].Tag)
}

func TestDefaultWeightsSum(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)
}
