package dataset

import (
	"strings"
	"testing"

	"github.com/homefinder/eih-site-explorer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "site_name,latitude,longitude,proximity_to_library,proximity_to_hospital,sentiment_score\n"

func TestParse(t *testing.T) {
	t.Run("parses well-formed rows", func(t *testing.T) {
		csv := testHeader +
			"Evans Lane,37.2872,-121.8716,720,310,74\n" +
			"Rue Ferrari,37.2393,-121.7809,1100,1900,39\n"

		sites, err := Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, sites, 2)
		assert.Equal(t, "Evans Lane", sites[0].Name)
		assert.Equal(t, 37.2872, sites[0].Location.Lat)
		assert.Equal(t, -121.8716, sites[0].Location.Lon)
		assert.Equal(t, 720.0, sites[0].ProximityToLibrary)
		assert.Equal(t, 310.0, sites[0].ProximityToHospital)
		assert.Equal(t, 74.0, sites[0].SentimentScore)
	})

	t.Run("drops rows without coordinates", func(t *testing.T) {
		csv := testHeader +
			"No Latitude,,-121.8,100,200,50\n" +
			"No Longitude,37.3,,100,200,50\n" +
			"Bad Latitude,not-a-number,-121.8,100,200,50\n" +
			"Kept,37.3,-121.8,100,200,50\n"

		sites, err := Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "Kept", sites[0].Name)
	})

	t.Run("missing proximity aborts the load", func(t *testing.T) {
		csv := testHeader + "Gappy,37.3,-121.8,,200,50\n"

		_, err := Parse(strings.NewReader(csv))

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "Gappy", missing.Site)
		assert.Equal(t, "proximity_to_library", missing.Field)
	})

	t.Run("missing sentiment aborts the load", func(t *testing.T) {
		csv := testHeader + "Gappy,37.3,-121.8,100,200,\n"

		_, err := Parse(strings.NewReader(csv))

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "sentiment_score", missing.Field)
	})

	t.Run("out-of-range values pass through", func(t *testing.T) {
		csv := testHeader + "Odd,37.3,-121.8,-50,200,150\n"

		sites, err := Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, -50.0, sites[0].ProximityToLibrary)
		assert.Equal(t, 150.0, sites[0].SentimentScore)
	})

	t.Run("header order does not matter", func(t *testing.T) {
		csv := "sentiment_score,site_name,longitude,latitude,proximity_to_hospital,proximity_to_library\n" +
			"74,Evans Lane,-121.8716,37.2872,310,720\n"

		sites, err := Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "Evans Lane", sites[0].Name)
		assert.Equal(t, 720.0, sites[0].ProximityToLibrary)
	})

	t.Run("missing column fails", func(t *testing.T) {
		csv := "site_name,latitude,longitude\nX,37.3,-121.8\n"

		_, err := Parse(strings.NewReader(csv))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "proximity_to_library")
	})
}

func TestSelect(t *testing.T) {
	sites := []models.Site{
		{Name: "A"},
		{Name: "B"},
		{Name: "C"},
	}

	t.Run("preserves selection order", func(t *testing.T) {
		selected := Select(sites, []string{"B", "A"})

		require.Len(t, selected, 2)
		assert.Equal(t, "B", selected[0].Name)
		assert.Equal(t, "A", selected[1].Name)
	})

	t.Run("drops unknown names", func(t *testing.T) {
		selected := Select(sites, []string{"Nope", "C"})

		require.Len(t, selected, 1)
		assert.Equal(t, "C", selected[0].Name)
	})

	t.Run("empty selection yields nothing", func(t *testing.T) {
		assert.Empty(t, Select(sites, nil))
	})
}
