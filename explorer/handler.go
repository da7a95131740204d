package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/homefinder/eih-site-explorer/analysis"
	"github.com/homefinder/eih-site-explorer/dataset"
	"github.com/homefinder/eih-site-explorer/models"
	"github.com/homefinder/eih-site-explorer/scoring"
	"github.com/tmc/langchaingo/chains"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

type Handler struct {
	contextLLM *chains.LLMChain
	sites      []models.Site
	nats       *NatsClient
}

func NewHandler(sites []models.Site, contextLLM *chains.LLMChain, nc *NatsClient) (*Handler, error) {
	return &Handler{
		contextLLM: contextLLM,
		sites:      sites,
		nats:       nc,
	}, nil
}

// ScoredSites scores the full dataset under the given weights, falling back
// to the slider defaults. Scores are derived per call; nothing is cached
// across weight changes.
func (h *Handler) ScoredSites(w *scoring.Weights) []scoring.ScoredSite {
	weights := scoring.DefaultWeights()
	if w != nil {
		weights = *w
	}

	return scoring.ScoreAll(h.sites, weights)
}

// SitesGeoJSON renders the scored dataset as a GeoJSON FeatureCollection for
// the map layer.
func (h *Handler) SitesGeoJSON(w *scoring.Weights) (*geojson.FeatureCollection, error) {
	scored := h.ScoredSites(w)

	features := make([]*geojson.Feature, len(scored))
	for i, site := range scored {
		point := geom.NewPointFlat(geom.XY, []float64{site.Location.Lon, site.Location.Lat})
		features[i] = &geojson.Feature{
			ID:       site.Name,
			Geometry: point,
			Properties: map[string]interface{}{
				"name":                  site.Name,
				"proximity_to_library":  site.ProximityToLibrary,
				"proximity_to_hospital": site.ProximityToHospital,
				"sentiment_score":       site.SentimentScore,
				"iis_score":             site.IIS,
				"suitability_tag":       site.Tag,
			},
		}
	}

	return &geojson.FeatureCollection{Features: features}, nil
}

type MapViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// MapView returns the initial viewport: the mean site position at the zoom
// level the original dashboard used.
func (h *Handler) MapView() MapViewState {
	view := MapViewState{Zoom: 11}
	if len(h.sites) == 0 {
		return view
	}

	for _, site := range h.sites {
		view.Latitude += site.Location.Lat
		view.Longitude += site.Location.Lon
	}
	view.Latitude /= float64(len(h.sites))
	view.Longitude /= float64(len(h.sites))

	return view
}

// Analyze selects the named sites, builds the recommendation prompt, and
// streams the LLM response. Message order on the channel: one "sites" frame
// with the scored selection, then "chat" frames as chunks arrive, then an
// io.EOF sentinel.
func (h *Handler) Analyze(
	ctx context.Context,
	names []string,
	w *scoring.Weights,
) chan *ProcessingResult {
	resultChan := make(chan *ProcessingResult)

	go func() {
		defer func() {
			close(resultChan)
		}()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		selected := dataset.Select(h.sites, names)

		prompt, err := analysis.BuildPrompt(selected, w)
		if err != nil {
			resultChan <- &ProcessingResult{
				Err: fmt.Errorf("failed to build analysis prompt: %w", err),
			}

			return
		}

		scored, err := json.Marshal(map[string]interface{}{
			"sites": h.scoreSelection(selected, w),
		})
		if err != nil {
			resultChan <- &ProcessingResult{
				Err: fmt.Errorf("failed to marshal selection: %w", err),
			}

			return
		}

		resultChan <- &ProcessingResult{
			Msg: WebSocketsMessage{
				Type: "sites",
				Data: string(scored),
			},
		}

		_, err = h.GenerateRecommendation(ctx, prompt, func(message []byte) error {
			resultChan <- &ProcessingResult{
				Err: nil,
				Msg: WebSocketsMessage{
					Type: "chat",
					Data: string(message),
				},
			}

			return nil
		})
		if err != nil {
			resultChan <- &ProcessingResult{
				Err: fmt.Errorf("recommendation generation failed: %w", err),
			}
			return
		}

		resultChan <- &ProcessingResult{
			Err: io.EOF,
		}
	}()

	return resultChan
}

func (h *Handler) scoreSelection(selected []models.Site, w *scoring.Weights) []scoring.ScoredSite {
	weights := scoring.DefaultWeights()
	if w != nil {
		weights = *w
	}

	return scoring.ScoreAll(selected, weights)
}

// GenerateRecommendation runs the conversation chain over the prompt,
// streaming chunks through streamHandler and returning the full response.
func (h *Handler) GenerateRecommendation(
	ctx context.Context,
	prompt string,
	streamHandler func(message []byte) error,
) (string, error) {
	finalResponse, err := chains.Run(
		ctx,
		h.contextLLM,
		prompt,
		chains.WithTemperature(0),
		chains.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			return streamHandler(chunk)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate recommendation: %w", err)
	}

	return finalResponse, nil
}

// SubmitFeedback stamps and publishes a feedback event to the broker. The
// feedback consumer appends it to the feedback log.
func (h *Handler) SubmitFeedback(feedback *FeedbackRequest) error {
	event := FeedbackEvent{
		SiteName:    feedback.SiteName,
		Comment:     feedback.Comment,
		Rating:      feedback.Rating,
		SubmittedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback event: %w", err)
	}

	if err := h.nats.Publish(h.nats.feedbackSubject, data); err != nil {
		return fmt.Errorf("failed to publish feedback event: %w", err)
	}

	return nil
}
