package newsapi

import (
	"fmt"
	"strings"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Articles struct {
	status
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

type Article struct {
	Source      Source    `json:"source"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Url         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitzero"`
}

type Source struct {
	Id          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Url         string `json:"url,omitempty"`
	Category    string `json:"category,omitempty"`
	Language    string `json:"language,omitempty"`
	Country     string `json:"country,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Summary returns the articles as numbered lines for a model to read
func (a Articles) Summary() string {
	if len(a.Articles) == 0 {
		return "No articles found."
	}
	var buf strings.Builder
	for i, article := range a.Articles {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "%d. %s", i+1, strings.TrimSpace(article.Title))
		if article.Source.Name != "" && !strings.HasSuffix(article.Title, article.Source.Name) {
			fmt.Fprintf(&buf, " (%s)", article.Source.Name)
		}
		if !article.PublishedAt.IsZero() {
			fmt.Fprintf(&buf, ", %s", article.PublishedAt.UTC().Format(time.DateOnly))
		}
		if article.Url != "" {
			fmt.Fprintf(&buf, "\n   %s", article.Url)
		}
	}
	return buf.String()
}
