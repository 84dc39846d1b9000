// internal/app/news/sources.go
//
// Package news ingests cybersecurity headlines from public RSS and Atom
// feeds into the cyber_news collection. Ingestion is balanced (a fixed
// number of items per source each run) and deduplicated by article link.
package news

import (
	"fmt"
	"strings"
)

// Source is one feed to ingest from.
type Source struct {
	Name string
	URL  string
}

// DefaultSources returns the built-in feed list.
func DefaultSources() []Source {
	return []Source{
		{Name: "CyberWire", URL: "https://thecyberwire.com/feeds/rss.xml"},
		{Name: "KrebsOnSecurity", URL: "https://krebsonsecurity.com/feed/"},
		{Name: "CISA Advisories", URL: "https://www.cisa.gov/cybersecurity-advisories/all.xml"},
		{Name: "BleepingComputer", URL: "https://www.bleepingcomputer.com/feed/"},
		{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews"},
		{Name: "NIST News", URL: "https://www.nist.gov/news-events/news/rss.xml"},
	}
}

// ParseSources parses configured feed overrides of the form "Name|URL".
// An empty slice means use the defaults.
func ParseSources(specs []string) ([]Source, error) {
	if len(specs) == 0 {
		return DefaultSources(), nil
	}
	out := make([]Source, 0, len(specs))
	for _, spec := range specs {
		name, url, ok := strings.Cut(spec, "|")
		name = strings.TrimSpace(name)
		url = strings.TrimSpace(url)
		if !ok || name == "" || url == "" {
			return nil, fmt.Errorf("invalid feed spec %q, want \"Name|URL\"", spec)
		}
		out = append(out, Source{Name: name, URL: url})
	}
	return out, nil
}
