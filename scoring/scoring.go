// Package scoring computes the Infrastructure Influence Score (IIS), a
// weighted sum over normalized sentiment and proximity metrics, and the
// discrete suitability tag derived from it.
package scoring

import (
	"github.com/homefinder/eih-site-explorer/models"
)

// Proximity beyond this many meters stops mattering; the normalized
// contribution bottoms out at zero.
const proximityCapMeters = 1000

// Tag is the discrete suitability band derived from an IIS score.
type Tag string

const (
	TagIdeal    Tag = "Ideal"
	TagModerate Tag = "Moderate"
	TagPoor     Tag = "Poor"
)

// Weights is the user-adjustable weight triple applied to the normalized
// sentiment, library-proximity, and hospital-proximity terms.
//
// Weights are applied as given, never normalized. A triple that does not sum
// to 1 produces IIS values outside the nominal [0,1] range, and the tag
// thresholds assume roughly-normalized weights; callers own that tradeoff.
type Weights struct {
	Sentiment float64 `json:"sentiment"`
	Library   float64 `json:"library"`
	Hospital  float64 `json:"hospital"`
}

// DefaultWeights returns the slider defaults from the original dashboard.
func DefaultWeights() Weights {
	return Weights{
		Sentiment: 0.33,
		Library:   0.33,
		Hospital:  0.34,
	}
}

func (w Weights) Sum() float64 {
	return w.Sentiment + w.Library + w.Hospital
}

// Score computes the IIS for one site under the given weights.
//
// Sentiment is scaled by 1/100 without clamping, so out-of-range sentiment
// propagates into the score. Proximities are folded through
// 1 - min(d, 1000)/1000: anything at or beyond 1000m contributes zero, and a
// negative distance yields a normalized term above 1. Both pass-throughs are
// kept from the original dashboard on purpose.
func Score(site models.Site, w Weights) float64 {
	normSentiment := site.SentimentScore / 100
	normLibrary := 1 - min(site.ProximityToLibrary, proximityCapMeters)/proximityCapMeters
	normHospital := 1 - min(site.ProximityToHospital, proximityCapMeters)/proximityCapMeters

	return w.Sentiment*normSentiment + w.Library*normLibrary + w.Hospital*normHospital
}

// TagFor bands a score. Lower bounds are inclusive: exactly 0.75 is Ideal
// and exactly 0.5 is Moderate.
func TagFor(score float64) Tag {
	switch {
	case score >= 0.75:
		return TagIdeal
	case score >= 0.5:
		return TagModerate
	default:
		return TagPoor
	}
}

// ScoredSite pairs a site with its derived IIS score and tag. The derived
// fields are pure functions of the site and the weight triple; they are
// recomputed on every pass and never persisted.
type ScoredSite struct {
	models.Site
	IIS float64 `json:"iis_score"`
	Tag Tag     `json:"suitability_tag"`
}

// ScoreAll scores every site under the given weights, preserving input order.
func ScoreAll(sites []models.Site, w Weights) []ScoredSite {
	scored := make([]ScoredSite, len(sites))
	for i, site := range sites {
		iis := Score(site, w)
		scored[i] = ScoredSite{
			Site: site,
			IIS:  iis,
			Tag:  TagFor(iis),
		}
	}

	return scored
}
