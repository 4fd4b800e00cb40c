package article

import (
	"strings"
	"time"
)

// UnknownSource is used when the search service does not name a publisher.
const UnknownSource = "Unknown"

// Prefixes of the human-readable text stored for failed summaries.
const (
	FetchErrorPrefix    = "Error fetching article content: "
	GenerateErrorPrefix = "Error generating summary: "
)

type SummaryStatus string

const (
	SummaryOK    SummaryStatus = "ok"
	SummaryError SummaryStatus = "error"
)

// Summary is the outcome of one summarization attempt. Failed attempts keep
// their error text so the persisted form stays a single string.
type Summary struct {
	Status SummaryStatus
	Text   string
}

func SummaryOf(text string) *Summary {
	return &Summary{Status: SummaryOK, Text: text}
}

func FetchFailure(err error) *Summary {
	return &Summary{Status: SummaryError, Text: FetchErrorPrefix + err.Error()}
}

func GenerateFailure(err error) *Summary {
	return &Summary{Status: SummaryError, Text: GenerateErrorPrefix + err.Error()}
}

// ParseSummary restores the tag of a persisted summary from its text.
func ParseSummary(text string) *Summary {
	if strings.HasPrefix(text, strings.TrimSpace(FetchErrorPrefix)) ||
		strings.HasPrefix(text, strings.TrimSpace(GenerateErrorPrefix)) {
		return &Summary{Status: SummaryError, Text: text}
	}
	return SummaryOf(text)
}

func (s *Summary) IsError() bool {
	return s != nil && s.Status == SummaryError
}

type Article struct {
	Title       string
	URL         string
	SourceName  string
	PublishedAt time.Time
	Content     *string // nil when the source gave no body
	Summary     *Summary

	// Language is a hint taken from the query; it is not persisted.
	Language string
}

// New builds an article from an already parsed publication time.
func New(title, url, sourceName string, publishedAt time.Time, content *string) *Article {
	if sourceName == "" {
		sourceName = UnknownSource
	}

	return &Article{
		Title:       title,
		URL:         url,
		SourceName:  sourceName,
		PublishedAt: publishedAt,
		Content:     content,
	}
}

// NewFromString builds an article from an ISO-8601 publication date.
func NewFromString(title, url, sourceName, publishedAt string, content *string) (*Article, error) {
	t, err := ParsePublishedAt(publishedAt)
	if err != nil {
		return nil, err
	}
	return New(title, url, sourceName, t, content), nil
}

// HasSummary reports whether summarization already ran, successfully or not.
func (a *Article) HasSummary() bool {
	return a.Summary != nil
}

// ContentText returns the body or an empty string.
func (a *Article) ContentText() string {
	if a.Content == nil {
		return ""
	}
	return *a.Content
}

// SummaryText returns the stored summary text or an empty string.
func (a *Article) SummaryText() string {
	if a.Summary == nil {
		return ""
	}
	return a.Summary.Text
}

// StringPtr is a small helper for optional text fields.
func StringPtr(s string) *string {
	return &s
}
