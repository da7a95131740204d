// Package analysis assembles the recommendation request sent to the LLM.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/homefinder/eih-site-explorer/models"
	"github.com/homefinder/eih-site-explorer/scoring"
)

// ErrNoSitesSelected is returned when BuildPrompt is invoked with an empty
// selection. An empty selection is a caller bug, and failing loudly beats
// paying for a vacuous completion.
var ErrNoSitesSelected = errors.New("no sites selected for analysis")

const promptPreamble = `You are a policy analyst. Analyze the following Emergency Interim Housing (EIH) candidate sites based on proximity to infrastructure and resident sentiment. Recommend which sites seem more viable and why:`

const promptPostamble = `Be specific in your reasoning based on the numbers given.`

// BuildPrompt formats the analysis request for the selected sites. Sites are
// listed in the order given. When weights are supplied, each line carries the
// computed IIS to two decimals and the prompt closes with the weight triple.
//
// The builder is deterministic and performs no I/O; the returned string is
// the sole payload handed to the LLM client.
func BuildPrompt(selected []models.Site, w *scoring.Weights) (string, error) {
	if len(selected) == 0 {
		return "", ErrNoSitesSelected
	}

	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("\n\n")

	for _, site := range selected {
		b.WriteString("- ")
		b.WriteString(site.Stringify())
		if w != nil {
			fmt.Fprintf(&b, ", IIS %.2f", scoring.Score(site, *w))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptPostamble)

	if w != nil {
		fmt.Fprintf(&b, "\n\nScoring weights applied: sentiment=%g, library=%g, hospital=%g", w.Sentiment, w.Library, w.Hospital)
	}

	b.WriteString("\n")

	return b.String(), nil
}
