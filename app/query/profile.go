package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/lysyi3m/news-digest/app/article"
	"github.com/lysyi3m/news-digest/app/cfg"
)

const DefaultPageSize = 5

var ErrMissingQuery = errors.New("query is required")

var validSortBy = map[string]bool{
	"relevancy":   true,
	"popularity":  true,
	"publishedAt": true,
}

var validSearchIn = map[string]bool{
	"title":       true,
	"description": true,
	"content":     true,
}

// FromConfig builds an ad-hoc profile from command line flags.
func FromConfig(config *cfg.Cfg) (*Profile, error) {
	profile := &Profile{
		Name:     "flags",
		Query:    config.Query,
		PageSize: config.PageSize,
		From:     config.From,
		To:       config.To,
		Language: config.Language,
		Domains:  config.Domains,
		SortBy:   config.SortBy,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks the profile and normalizes the language to its base code.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	if strings.TrimSpace(p.Query) == "" {
		return ErrMissingQuery
	}

	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100, got %d", p.PageSize)
	}

	if p.Language != "" {
		tag, err := language.Parse(p.Language)
		if err != nil {
			return fmt.Errorf("invalid language %q: %w", p.Language, err)
		}
		base, _ := tag.Base()
		p.Language = base.String()
	}

	if p.SortBy != "" && !validSortBy[p.SortBy] {
		return fmt.Errorf("invalid sort_by: %s", p.SortBy)
	}

	if p.SearchIn != "" {
		for _, field := range strings.Split(p.SearchIn, ",") {
			if !validSearchIn[strings.TrimSpace(field)] {
				return fmt.Errorf("invalid search_in field: %s", field)
			}
		}
	}

	dates := map[string]string{
		"from": p.From,
		"to":   p.To,
	}

	for fieldName, fieldValue := range dates {
		if fieldValue == "" {
			continue
		}
		if _, err := article.ParsePublishedAt(fieldValue); err != nil {
			return fmt.Errorf("invalid %s date %q: %w", fieldName, fieldValue, err)
		}
	}

	return nil
}

// Params returns the search service parameters for the profile.
func (p *Profile) Params() url.Values {
	params := url.Values{}
	params.Set("q", p.Query)
	params.Set("pageSize", strconv.Itoa(p.PageSize))

	optional := map[string]string{
		"from":     p.From,
		"to":       p.To,
		"language": p.Language,
		"domains":  p.Domains,
		"sortBy":   p.SortBy,
		"searchIn": p.SearchIn,
	}

	for key, value := range optional {
		if value != "" {
			params.Set(key, value)
		}
	}

	return params
}
