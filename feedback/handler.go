package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// FeedbackEvent mirrors the explorer's broker payload.
type FeedbackEvent struct {
	SiteName    string    `json:"site_name,omitempty"`
	Comment     string    `json:"comment"`
	Rating      int       `json:"rating,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeedbackLog appends one JSON line per event to the feedback file. Appends
// are serialized; the file is opened once and kept open for the life of the
// process.
type FeedbackLog struct {
	mu   sync.Mutex
	file *os.File
}

func NewFeedbackLog(path string) (*FeedbackLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open feedback log: %w", err)
	}

	return &FeedbackLog{file: f}, nil
}

func (l *FeedbackLog) Append(line []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append feedback line: %w", err)
	}

	return nil
}

func (l *FeedbackLog) Close() error {
	return l.file.Close()
}

type Handler struct {
	log *FeedbackLog
}

func NewHandler(log *FeedbackLog) *Handler {
	return &Handler{log: log}
}

// HandleFeedbackMessage validates and re-serializes a feedback event before
// appending it, so malformed broker payloads never reach the log file.
func (h *Handler) HandleFeedbackMessage(ctx context.Context, msg []byte) error {
	var event FeedbackEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("decode feedback event: %w", err)
	}

	if event.Comment == "" {
		return fmt.Errorf("feedback event has no comment")
	}
	if event.SubmittedAt.IsZero() {
		event.SubmittedAt = time.Now().UTC()
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode feedback event: %w", err)
	}

	return h.log.Append(line)
}
