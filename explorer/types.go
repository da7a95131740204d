package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homefinder/eih-site-explorer/scoring"
)

type ProcessingResult struct {
	Err error
	Msg WebSocketsMessage
}

type WebSocketsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type FeedbackRequest struct {
	SiteName string `json:"site_name"`
	Comment  string `json:"comment"`
	Rating   int    `json:"rating"`
}

func (f *FeedbackRequest) Validate() error {
	if f.Comment == "" {
		return fmt.Errorf("feedback comment is required")
	}
	if f.Rating < 0 || f.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}

	return nil
}

// FeedbackEvent is the broker payload, one JSON line in the feedback log.
type FeedbackEvent struct {
	SiteName    string    `json:"site_name,omitempty"`
	Comment     string    `json:"comment"`
	Rating      int       `json:"rating,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// parseWeights reads the ws/wl/wh query params. All three absent means the
// caller wants defaults (nil); a partial or unparseable triple is an error.
func parseWeights(ctx *gin.Context) (*scoring.Weights, error) {
	ws, hasWs := ctx.GetQuery("ws")
	wl, hasWl := ctx.GetQuery("wl")
	wh, hasWh := ctx.GetQuery("wh")

	if !hasWs && !hasWl && !hasWh {
		return nil, nil
	}
	if !hasWs || !hasWl || !hasWh {
		return nil, fmt.Errorf("weights require all of ws, wl, wh")
	}

	var (
		w   scoring.Weights
		err error
	)
	if w.Sentiment, err = strconv.ParseFloat(ws, 64); err != nil {
		return nil, fmt.Errorf("invalid sentiment weight %q", ws)
	}
	if w.Library, err = strconv.ParseFloat(wl, 64); err != nil {
		return nil, fmt.Errorf("invalid library weight %q", wl)
	}
	if w.Hospital, err = strconv.ParseFloat(wh, 64); err != nil {
		return nil, fmt.Errorf("invalid hospital weight %q", wh)
	}

	return &w, nil
}
