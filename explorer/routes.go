package main

import (
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (e *Explorer) Run() error {
	r := gin.Default()

	r.StaticFile("/", "web/index.html")

	r.GET("/sites", func(ctx *gin.Context) {
		w, err := parseWeights(ctx)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, e.handler.ScoredSites(w))
	})

	r.GET("/sites/geojson", func(ctx *gin.Context) {
		w, err := parseWeights(ctx)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fc, err := e.handler.SitesGeoJSON(w)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, fc)
	})

	r.GET("/map/view", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, e.handler.MapView())
	})

	r.GET("/analyze", func(ctx *gin.Context) {
		names := splitNames(ctx.Query("sites"))

		w, err := parseWeights(ctx)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c, err := e.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		defer c.Close()

		resultChan := e.handler.Analyze(ctx, names, w)
		for {
			select {
			case <-ctx.Request.Context().Done():
				return
			case result := <-resultChan:
				if result == nil {
					return
				}
				if result.Err != nil {
					if errors.Is(result.Err, io.EOF) {
						return
					}
					if err := c.WriteJSON(WebSocketsMessage{Type: "error", Data: result.Err.Error()}); err != nil {
						slog.Error("failed to write error frame", "error", err)
					}
					return
				}

				if err := c.WriteJSON(result.Msg); err != nil {
					slog.Error("failed to write to ws connection", "error", err)
					return
				}
			}
		}
	})

	r.POST("/feedback", func(ctx *gin.Context) {
		var feedback FeedbackRequest

		if err := ctx.ShouldBindJSON(&feedback); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := feedback.Validate(); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := e.handler.SubmitFeedback(&feedback); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusAccepted, gin.H{"message": "feedback recorded"})
	})

	return r.Run(e.config.Server.Address())
}

func splitNames(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}

	return names
}
