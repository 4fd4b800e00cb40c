package article

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("missing required field")

// requiredFields lists the keys every persisted record must carry.
var requiredFields = []string{"title", "url", "source_name", "publication_date", "content"}

// Record is the persisted form of an article.
type Record struct {
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	SourceName      string  `json:"source_name"`
	PublicationDate string  `json:"publication_date"`
	Content         *string `json:"content"`
	AISummary       *string `json:"ai_summary"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("failed to decode article record: %w", err)
	}

	for _, field := range requiredFields {
		if _, ok := keys[field]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	type plain Record
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to decode article record: %w", err)
	}

	*r = Record(decoded)
	return nil
}

func (a *Article) ToRecord() Record {
	record := Record{
		Title:           a.Title,
		URL:             a.URL,
		SourceName:      a.SourceName,
		PublicationDate: FormatPublishedAt(a.PublishedAt),
		Content:         a.Content,
	}

	if a.Summary != nil {
		text := a.Summary.Text
		record.AISummary = &text
	}

	return record
}

func FromRecord(r Record) (*Article, error) {
	a, err := NewFromString(r.Title, r.URL, r.SourceName, r.PublicationDate, r.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to restore article %q: %w", r.URL, err)
	}

	// Persisted records keep an empty source name as-is.
	a.SourceName = r.SourceName

	// An empty summary counts as not summarized yet.
	if r.AISummary != nil && *r.AISummary != "" {
		a.Summary = ParseSummary(*r.AISummary)
	}

	return a, nil
}

func (a *Article) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToRecord())
}

func (a *Article) UnmarshalJSON(data []byte) error {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	restored, err := FromRecord(record)
	if err != nil {
		return err
	}

	*a = *restored
	return nil
}
