// Package dataset loads the candidate-site CSV.
//
// Rows without usable coordinates are dropped, matching the original
// dashboard behavior. Every other required field must be present: a
// surviving row with a missing proximity or sentiment value aborts the
// load with a MissingFieldError rather than being defaulted.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/homefinder/eih-site-explorer/models"
)

// MissingFieldError reports a site row that lacks a required field.
type MissingFieldError struct {
	Site  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("site %q is missing required field %q", e.Site, e.Field)
}

var requiredColumns = []string{
	"site_name",
	"latitude",
	"longitude",
	"proximity_to_library",
	"proximity_to_hospital",
	"sentiment_score",
}

// Load reads the site CSV at path. Column positions are resolved from the
// header row. Rows whose latitude or longitude is empty or unparseable are
// skipped; out-of-range sentiment and negative proximities pass through
// untouched.
func Load(path string) ([]models.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	sites, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}

	return sites, nil
}

// Parse reads site records from r. See Load.
func Parse(r io.Reader) ([]models.Site, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("dataset header is missing column %q", name)
		}
	}

	var sites []models.Site
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		name := strings.TrimSpace(record[columns["site_name"]])

		lat, latErr := parseFloat(record[columns["latitude"]])
		lon, lonErr := parseFloat(record[columns["longitude"]])
		if latErr != nil || lonErr != nil {
			// No coordinates, nothing to put on the map.
			continue
		}

		library, err := parseFloat(record[columns["proximity_to_library"]])
		if err != nil {
			return nil, &MissingFieldError{Site: name, Field: "proximity_to_library"}
		}
		hospital, err := parseFloat(record[columns["proximity_to_hospital"]])
		if err != nil {
			return nil, &MissingFieldError{Site: name, Field: "proximity_to_hospital"}
		}
		sentiment, err := parseFloat(record[columns["sentiment_score"]])
		if err != nil {
			return nil, &MissingFieldError{Site: name, Field: "sentiment_score"}
		}

		sites = append(sites, models.Site{
			Name:                name,
			Location:            models.NewGeoPoint(lon, lat),
			ProximityToLibrary:  library,
			ProximityToHospital: hospital,
			SentimentScore:      sentiment,
		})
	}

	return sites, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	return strconv.ParseFloat(s, 64)
}

// Select restricts sites to the given names, preserving the order of the
// names list. Names that match no site are dropped silently; duplicates
// resolve to the first matching site.
func Select(sites []models.Site, names []string) []models.Site {
	byName := make(map[string]models.Site, len(sites))
	for _, site := range sites {
		if _, ok := byName[site.Name]; !ok {
			byName[site.Name] = site
		}
	}

	selected := make([]models.Site, 0, len(names))
	for _, name := range names {
		if site, ok := byName[name]; ok {
			selected = append(selected, site)
		}
	}

	return selected
}
