// internal/app/news/parse.go
package news

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Item is one article extracted from a feed, before storage mapping.
type Item struct {
	Title     string
	Link      string
	Published time.Time
}

type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	GUID    string `xml:"guid"`
	PubDate string `xml:"pubDate"`
	DCDate  string `xml:"http://purl.org/dc/elements/1.1/ date"`
}

type atomDoc struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	ID        string     `xml:"id"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// dateLayouts are tried in order when parsing feed timestamps. RSS feeds
// use RFC 822 variants, Atom and dc:date use RFC 3339.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// Parse extracts items from an RSS 2.0 or Atom document, preserving
// document order. Items without a resolvable link are dropped. A missing
// title becomes "Untitled"; an unparseable or missing date becomes now.
func Parse(data []byte, now time.Time) ([]Item, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}

	switch root {
	case "rss", "RDF":
		var doc rssDoc
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse rss feed: %w", err)
		}
		out := make([]Item, 0, len(doc.Channel.Items))
		for _, it := range doc.Channel.Items {
			link := strings.TrimSpace(it.Link)
			if link == "" {
				link = strings.TrimSpace(it.GUID)
			}
			if link == "" {
				continue
			}
			out = append(out, Item{
				Title:     titleOrDefault(it.Title),
				Link:      link,
				Published: parseDate(firstNonEmpty(it.PubDate, it.DCDate), now),
			})
		}
		return out, nil

	case "feed":
		var doc atomDoc
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse atom feed: %w", err)
		}
		out := make([]Item, 0, len(doc.Entries))
		for _, e := range doc.Entries {
			link := atomEntryLink(e)
			if link == "" {
				continue
			}
			out = append(out, Item{
				Title:     titleOrDefault(e.Title),
				Link:      link,
				Published: parseDate(firstNonEmpty(e.Published, e.Updated), now),
			})
		}
		return out, nil
	}

	return nil, fmt.Errorf("unrecognized feed format: root element %q", root)
}

// rootElement returns the local name of the document's first start element.
func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("parse feed: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// atomEntryLink prefers an alternate <link href>, then any link, then the
// entry id (Atom ids are commonly permalinks).
func atomEntryLink(e atomEntry) string {
	for _, l := range e.Links {
		if l.Rel == "" || l.Rel == "alternate" {
			if href := strings.TrimSpace(l.Href); href != "" {
				return href
			}
		}
	}
	for _, l := range e.Links {
		if href := strings.TrimSpace(l.Href); href != "" {
			return href
		}
	}
	return strings.TrimSpace(e.ID)
}

func titleOrDefault(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "Untitled"
	}
	return title
}

func parseDate(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback.UTC()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return fallback.UTC()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
