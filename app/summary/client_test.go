package summary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/news-digest/app/article"
)

type fakeGenerator struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func newTestArticle(url string) *article.Article {
	return article.New("Example", url, "X News", time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), article.StringPtr("body"))
}

func TestSummarizeSuccess(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>Full article text</p></body></html>"))
	}))
	defer server.Close()

	generator := &fakeGenerator{text: "A concise summary."}
	client := NewClient(server.Client(), generator, "News Digest/test", false)

	a := newTestArticle(server.URL + "/a")
	if err := client.Summarize(context.Background(), a); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if a.Summary == nil || a.Summary.Status != article.SummaryOK {
		t.Fatalf("Expected successful summary, got %+v", a.Summary)
	}
	if a.Summary.Text != "A concise summary." {
		t.Errorf("Expected summary text verbatim, got '%s'", a.Summary.Text)
	}
	if generator.calls != 1 {
		t.Errorf("Expected 1 generator call, got %d", generator.calls)
	}
	if gotUserAgent != "News Digest/test" {
		t.Errorf("Expected user agent to be sent, got '%s'", gotUserAgent)
	}

	prompt := generator.prompts[0]
	for _, want := range []string{"Title: Example", "URL: " + server.URL + "/a", "Full article text", "2-3 sentences"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestSummarizeEmptyURL(t *testing.T) {
	generator := &fakeGenerator{text: "unused"}
	transport := &countingTransport{}
	client := NewClient(&http.Client{Transport: transport}, generator, "", false)

	a := newTestArticle("")
	err := client.Summarize(context.Background(), a)
	if !errors.Is(err, ErrNoURL) {
		t.Fatalf("Expected ErrNoURL, got: %v", err)
	}
	if transport.requests != 0 {
		t.Errorf("Expected no network call, got %d", transport.requests)
	}
	if generator.calls != 0 {
		t.Errorf("Expected no generator call, got %d", generator.calls)
	}
	if a.HasSummary() {
		t.Error("Expected summary to stay unset")
	}
}

func TestSummarizeFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	generator := &fakeGenerator{text: "unused"}
	client := NewClient(server.Client(), generator, "", false)

	a := newTestArticle(server.URL + "/missing")
	if err := client.Summarize(context.Background(), a); err != nil {
		t.Fatalf("Expected failure to be captured, got: %v", err)
	}

	if !a.Summary.IsError() {
		t.Fatalf("Expected error summary, got %+v", a.Summary)
	}
	if !strings.HasPrefix(a.Summary.Text, "Error fetching article content:") {
		t.Errorf("Unexpected summary text: %s", a.Summary.Text)
	}
	if generator.calls != 0 {
		t.Errorf("Expected generator not to be called, got %d calls", generator.calls)
	}
}

func TestSummarizeUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	generator := &fakeGenerator{text: "unused"}
	client := NewClient(http.DefaultClient, generator, "", false)

	a := newTestArticle(url)
	if err := client.Summarize(context.Background(), a); err != nil {
		t.Fatalf("Expected failure to be captured, got: %v", err)
	}
	if !strings.HasPrefix(a.SummaryText(), "Error fetching article content:") {
		t.Errorf("Unexpected summary text: %s", a.SummaryText())
	}
}

func TestSummarizeGeneratorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page"))
	}))
	defer server.Close()

	generator := &fakeGenerator{err: errors.New("quota exceeded")}
	client := NewClient(server.Client(), generator, "", false)

	a := newTestArticle(server.URL)
	if err := client.Summarize(context.Background(), a); err != nil {
		t.Fatalf("Expected failure to be captured, got: %v", err)
	}
	if a.SummaryText() != "Error generating summary: quota exceeded" {
		t.Errorf("Unexpected summary text: %s", a.SummaryText())
	}
}

func TestSummarizeMissingGeminiKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), NewGeminiGenerator("", "", nil), "", false)

	a := newTestArticle(server.URL)
	if err := client.Summarize(context.Background(), a); err != nil {
		t.Fatalf("Expected failure to be captured, got: %v", err)
	}
	if !a.Summary.IsError() {
		t.Fatalf("Expected error summary, got %+v", a.Summary)
	}
	if !strings.Contains(a.SummaryText(), "GEMINI_API_KEY") {
		t.Errorf("Expected missing key to be reported, got: %s", a.SummaryText())
	}
}

func TestSummarizeWithExtraction(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>Extraction Test</title></head>
<body>
	<nav>Home | World | Sport</nav>
	<article>
		<h1>Extraction Test</h1>
		<p>This is the main content of the article. It contains several paragraphs of meaningful text that should be extracted by the readability algorithm.</p>
		<p>This is another paragraph with more content. The readability algorithm should identify this as the main content area and extract it properly.</p>
		<p>Here is some more substantial content to ensure we meet the character threshold. This paragraph adds more context and information that would be valuable to readers.</p>
	</article>
	<footer><p>Copyright 2025</p></footer>
</body>
</html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	generator := &fakeGenerator{text: "ok"}
	client := NewClient(server.Client(), generator, "", true)

	a := newTestArticle(server.URL)
	if err := client.Summarize(context.Background(), a); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	prompt := generator.prompts[0]
	if !strings.Contains(prompt, "main content of the article") {
		t.Error("Expected extracted text in prompt")
	}
	if strings.Contains(prompt, "<article>") {
		t.Error("Expected markup to be removed from prompt")
	}
}

type countingTransport struct {
	requests int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.requests++
	return nil, errors.New("unexpected request")
}
