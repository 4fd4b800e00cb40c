package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/news-digest/app/api"
	"github.com/lysyi3m/news-digest/app/cfg"
	"github.com/lysyi3m/news-digest/app/database"
	"github.com/lysyi3m/news-digest/app/news"
	"github.com/lysyi3m/news-digest/app/query"
	"github.com/lysyi3m/news-digest/app/summary"
)

func main() {
	config, err := cfg.Load(os.Args[1:])
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if config == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if config.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		slog.Error("News Digest failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config *cfg.Cfg) error {
	slog.Info("Starting News Digest", "version", config.Version, "serve", config.Serve)

	httpClient := &http.Client{Timeout: config.Timeout}

	generator := summary.NewGeminiGenerator(config.GeminiAPIKey, config.Model, httpClient)
	summarizer := summary.NewClient(httpClient, generator, config.UserAgent, config.ExtractContent)
	manager := news.NewManager(config, httpClient, summarizer)

	var repo *database.ArticleRepository
	if config.DBPath != "" {
		db, err := database.Open(config.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()

		repo = database.NewArticleRepository(db)
		slog.Info("Archive opened", "path", config.DBPath)
	}

	if config.Serve {
		return serve(ctx, config, manager, repo)
	}

	return collect(ctx, config, manager, repo)
}

// collect runs the fetch, summarize and save pipeline once.
func collect(ctx context.Context, config *cfg.Cfg, manager *news.Manager, repo *database.ArticleRepository) error {
	if config.Resume {
		if err := manager.LoadFromFile(config.Output); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	profile, err := resolveProfile(config)
	if err != nil {
		return err
	}

	if _, err := manager.FetchArticles(ctx, profile.Params()); err != nil {
		slog.Error("Search failed, continuing with the current collection", "profile", profile.Name, "error", err)
	}

	for _, feedURL := range config.FeedURLs {
		if _, err := manager.FetchFeed(ctx, feedURL); err != nil {
			slog.Error("Feed failed", "feed", feedURL, "error", err)
		}
	}

	if config.SkipSummaries {
		slog.Info("Skipping summaries")
	} else {
		manager.BatchSummarize(ctx, config.Delay)
	}

	if err := manager.SaveToFile(config.Output); err != nil {
		return err
	}

	if repo != nil {
		if _, err := manager.Archive(repo); err != nil {
			return err
		}
	}

	stats := manager.Stats()
	slog.Info("News Digest completed",
		"articles", stats.Total,
		"summarized", stats.Summarized,
		"failed", stats.Failed,
		"pending", stats.Pending,
		"output", config.Output)

	return nil
}

func resolveProfile(config *cfg.Cfg) (*query.Profile, error) {
	if config.Profile == "" {
		return query.FromConfig(config)
	}

	profileCache := query.NewProfileCache(config.QueriesDir)
	if err := profileCache.Run(); err != nil {
		return nil, fmt.Errorf("failed to load query profiles: %w", err)
	}

	return profileCache.GetProfile(config.Profile)
}

// serve exposes the saved collection over HTTP until ctx is cancelled.
func serve(ctx context.Context, config *cfg.Cfg, manager *news.Manager, repo *database.ArticleRepository) error {
	if err := manager.LoadFromFile(config.Output); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var archive database.ArticleStore
	if repo != nil {
		archive = repo
	}

	handler := api.NewHandler(config, manager, archive)

	httpServer := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", config.Port, "articles", manager.Len())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	slog.Info("HTTP server stopped")
	return nil
}
