package cfg

import "time"

type Cfg struct {
	// Credentials
	NewsAPIKey   string
	GeminiAPIKey string

	// Search
	NewsAPIURL string
	Query      string
	PageSize   int
	From       string
	To         string
	Language   string
	Domains    string
	SortBy     string
	Profile    string
	QueriesDir string
	FeedURLs   []string

	// Summarization
	Model          string
	Delay          time.Duration
	SkipSummaries  bool
	ExtractContent bool

	// Storage
	Output string
	Resume bool
	DBPath string

	// HTTP
	Timeout   time.Duration
	UserAgent string
	Serve     bool
	Port      string

	// Application metadata
	Debug   bool
	Version string
}
