package summary

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const promptTemplate = `Please provide a concise summary (2-3 sentences) of the following news article. The summary should be in the same language as the article.
Note: The content provided may be raw HTML, so please extract the main article content
while ignoring navigation menus, ads, and other webpage elements.
%s
Title: %s
URL: %s
Content: %s
`

// BuildPrompt renders the summarization request for one article.
func BuildPrompt(title, url, content, languageHint string) string {
	hint := ""
	if name := languageName(languageHint); name != "" {
		hint = fmt.Sprintf("The article was found by a search restricted to %s.\n", name)
	}

	return fmt.Sprintf(promptTemplate, hint, title, url, content)
}

func languageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}

	return display.English.Languages().Name(tag)
}
