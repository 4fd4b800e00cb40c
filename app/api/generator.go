package api

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/news-digest/app/article"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders the articles as an RSS 2.0 document. Successful summaries are
// used as item descriptions.
func (g *Generator) Run(channel Channel, articles []*article.Article) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeElement(&buf, "description", channel.Description, 4)

	if channel.SelfLink != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(channel.SelfLink)))
	}

	lastBuildDate := time.Now().In(time.Local)
	if len(articles) > 0 {
		lastBuildDate = newestPublication(articles)
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("News Digest/%s", cmp.Or(channel.Version, "dev")), 4)

	for _, a := range articles {
		g.writeItem(&buf, a)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, a *article.Article) {
	buf.WriteString("    <item>\n")

	if a.URL != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(a.URL)))
		xml.EscapeText(buf, []byte(a.URL))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", a.Title, 6)
	g.writeElement(buf, "link", a.URL, 6)
	g.writeElement(buf, "description", cmp.Or(itemDescription(a), "No description available"), 6)

	if content := a.ContentText(); content != "" && content != itemDescription(a) {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(strings.ReplaceAll(content, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	g.writeElement(buf, "pubDate", a.PublishedAt.Format(time.RFC1123Z), 6)
	g.writeElement(buf, "category", a.SourceName, 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// itemDescription prefers a successful summary over the article body.
func itemDescription(a *article.Article) string {
	if a.Summary != nil && !a.Summary.IsError() {
		return a.Summary.Text
	}
	return a.ContentText()
}

func newestPublication(articles []*article.Article) time.Time {
	newest := articles[0].PublishedAt
	for _, a := range articles[1:] {
		if a.PublishedAt.After(newest) {
			newest = a.PublishedAt
		}
	}
	return newest
}
