package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/homefinder/eih-site-explorer/config"
	"github.com/homefinder/eih-site-explorer/dataset"
	"github.com/homefinder/eih-site-explorer/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/memory/sqlite3"
)

type Explorer struct {
	config   *config.Config
	handler  *Handler
	upgrader websocket.Upgrader
}

func main() {
	cfg := config.LoadConfig()

	sqliteDb, err := sql.Open("sqlite3", "chat_history.db")
	if err != nil {
		log.Fatal(err)
	}

	chatHistory := sqlite3.NewSqliteChatMessageHistory(
		sqlite3.WithSession("eih-explorer"),
		sqlite3.WithDB(sqliteDb),
	)
	conversationBuffer := memory.NewConversationBuffer(memory.WithChatHistory(chatHistory))

	contextLLM, err := ollama.New(
		ollama.WithServerURL(cfg.Ollama.Address()),
		ollama.WithModel(cfg.Ollama.ContextModel),
		ollama.WithSystemPrompt(AnalystSysPrompt),
	)
	if err != nil {
		log.Fatal(err)
	}

	llmChain := chains.NewConversation(contextLLM, conversationBuffer)

	sites, err := loadSites(cfg)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("sites loaded", "source", cfg.Dataset.Source, "count", len(sites))

	nc, err := NewNatsClient(&cfg.Nats)
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Close()

	handler, err := NewHandler(sites, &llmChain, nc)
	if err != nil {
		log.Fatal(err)
	}

	explorer := &Explorer{
		handler:  handler,
		config:   cfg,
		upgrader: websocket.Upgrader{},
	}

	if err := explorer.Run(); err != nil {
		log.Fatalf("failed to run the explorer: %v", err)
	}
}

// loadSites reads the site table once at startup. The loaded slice is
// immutable for the life of the process; derived scores are recomputed per
// request, never stored back.
func loadSites(cfg *config.Config) ([]models.Site, error) {
	if cfg.Dataset.Source == "postgres" {
		pg, err := NewSitePg(cfg.Postgres.ConnStr())
		if err != nil {
			return nil, err
		}

		return pg.ListSites(context.Background())
	}

	return dataset.Load(cfg.Dataset.Path)
}
