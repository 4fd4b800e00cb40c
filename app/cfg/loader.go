package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

var ErrMissingNewsAPIKey = errors.New("NEWS_API_KEY not found in environment variables")

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Credentials
	NewsAPIKey   string `long:"news-api-key" env:"NEWS_API_KEY" description:"NewsAPI key (required unless --serve)"`
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key used for summaries"`

	// Search
	NewsAPIURL string   `long:"news-api-url" env:"NEWS_API_URL" default:"https://newsapi.org/v2/everything" description:"Search endpoint"`
	Query      string   `short:"q" long:"query" default:"tech" description:"Keywords or phrases to search for in the article title and body"`
	PageSize   int      `long:"page-size" default:"5" description:"Number of articles to request"`
	From       string   `long:"from" description:"Oldest publication date (YYYY-MM-DD)"`
	To         string   `long:"to" description:"Newest publication date (YYYY-MM-DD)"`
	Language   string   `long:"language" description:"Two-letter language code of the articles"`
	Domains    string   `long:"domains" description:"Comma-separated domains to restrict the search to"`
	SortBy     string   `long:"sort-by" description:"relevancy, popularity or publishedAt"`
	Profile    string   `long:"profile" description:"Name of a query profile in the queries directory"`
	QueriesDir string   `long:"queries-dir" env:"QUERIES_DIR" default:"./queries" description:"Directory containing query profiles"`
	FeedURLs   []string `long:"feed-url" env:"FEED_URLS" env-delim:"," description:"RSS/Atom feed to add to the collection (repeatable)"`

	// Summarization
	Model          string        `long:"model" env:"GEMINI_MODEL" default:"gemini-1.5-flash" description:"Gemini model used for summaries"`
	Delay          time.Duration `long:"delay" default:"1s" description:"Pause between summarization requests"`
	SkipSummaries  bool          `long:"skip-summaries" description:"Fetch and save without summarizing"`
	ExtractContent bool          `long:"extract-content" description:"Reduce pages to readable text before summarizing"`

	// Storage
	Output string `short:"o" long:"output" default:"articles.json" description:"JSON file the collection is saved to"`
	Resume bool   `long:"resume" description:"Load the output file before fetching"`
	DBPath string `long:"db-path" env:"DB_PATH" description:"SQLite archive of saved articles (optional)"`

	// HTTP
	Timeout   time.Duration `long:"timeout" default:"30s" description:"Timeout of outgoing HTTP requests"`
	UserAgent string        `long:"user-agent" env:"USER_AGENT" default:"News Digest/1.0" description:"User agent string for HTTP requests"`
	Serve     bool          `long:"serve" description:"Serve the saved collection over HTTP instead of fetching"`
	Port      string        `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads .env (when present), environment variables and args. It returns
// nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		NewsAPIKey:     raw.NewsAPIKey,
		GeminiAPIKey:   raw.GeminiAPIKey,
		NewsAPIURL:     raw.NewsAPIURL,
		Query:          raw.Query,
		PageSize:       raw.PageSize,
		From:           raw.From,
		To:             raw.To,
		Language:       raw.Language,
		Domains:        raw.Domains,
		SortBy:         raw.SortBy,
		Profile:        raw.Profile,
		QueriesDir:     raw.QueriesDir,
		FeedURLs:       raw.FeedURLs,
		Model:          raw.Model,
		Delay:          raw.Delay,
		SkipSummaries:  raw.SkipSummaries,
		ExtractContent: raw.ExtractContent,
		Output:         raw.Output,
		Resume:         raw.Resume,
		DBPath:         raw.DBPath,
		Timeout:        raw.Timeout,
		UserAgent:      raw.UserAgent,
		Serve:          raw.Serve,
		Port:           raw.Port,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) Validate() error {
	if c.NewsAPIKey == "" && !c.Serve {
		return ErrMissingNewsAPIKey
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100, got %d", c.PageSize)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must be non-negative")
	}
	if c.Output == "" {
		return fmt.Errorf("output file is required")
	}
	return nil
}
