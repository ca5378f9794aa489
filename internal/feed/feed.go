// Package feed renders the RSS 2.0 document of the latest published posts.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

// ContentType is what /feed.xml is served as.
const ContentType = "application/rss+xml; charset=utf-8"

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Atom    string   `xml:"xmlns:atom,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string   `xml:"title"`
	Link          string   `xml:"link"`
	Description   string   `xml:"description"`
	Language      string   `xml:"language"`
	LastBuildDate string   `xml:"lastBuildDate,omitempty"`
	SelfLink      atomLink `xml:"atom:link"`
	Items         []item   `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        guid   `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type guid struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// Channel describes the feed itself.
type Channel struct {
	Title       string
	BaseURL     string
	Description string
}

// Render builds the RSS document. Links are absolute, resolved against BaseURL.
func Render(ch Channel, posts []model.Post) ([]byte, error) {
	base := strings.TrimRight(ch.BaseURL, "/")
	doc := rss{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: channel{
			Title:       ch.Title,
			Link:        base + "/",
			Description: ch.Description,
			Language:    "es-es",
			SelfLink:    atomLink{Href: base + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
		},
	}
	var newest time.Time
	for _, p := range posts {
		link := fmt.Sprintf("%s/post/%d", base, p.ID)
		modified := p.LastModified()
		if modified.After(newest) {
			newest = modified
		}
		doc.Channel.Items = append(doc.Channel.Items, item{
			Title:       p.Title,
			Link:        link,
			GUID:        guid{Value: link, IsPermaLink: true},
			Description: view.StripHTML(p.Content),
			PubDate:     p.CreatedAt.UTC().Format(time.RFC1123Z),
		})
	}
	if !newest.IsZero() {
		doc.Channel.LastBuildDate = newest.UTC().Format(time.RFC1123Z)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
