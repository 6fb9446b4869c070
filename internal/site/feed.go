package site

import (
	"bytes"
	"encoding/xml"
	"net/url"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/version"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Generator     string    `xml:"generator,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Category    string  `xml:"category,omitempty"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// ItemLink returns the absolute URL of a page path under the site base URL.
func ItemLink(baseURL, outputPath string) (string, error) {
	return url.JoinPath(baseURL, outputPath)
}

// RenderFeed encodes an RSS 2.0 document for posts already in display order.
func RenderFeed(info Info, posts []*post.Post) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link, err := ItemLink(info.BaseURL, p.OutputPath)
		if err != nil {
			return nil, errors.InternalError("build feed item link", err).WithContext("path", p.SourcePath)
		}
		items = append(items, rssItem{
			Title:       p.Metadata.Title,
			Link:        link,
			Description: string(p.Content),
			Category:    p.Category,
			PubDate:     p.Metadata.Date.Format(time.RFC1123Z),
			// Name-based UUID keeps the guid stable across rebuilds.
			GUID: rssGUID{Value: uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()},
		})
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       info.Title,
			Link:        info.BaseURL,
			Description: info.Description,
			Generator:   "blogbuilder " + version.Version,
			Items:       items,
		},
	}
	if len(posts) > 0 {
		feed.Channel.LastBuildDate = posts[0].Metadata.Date.Format(time.RFC1123Z)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, errors.InternalError("encode feed", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Feed writes feed.xml with one item per post, newest first.
func (a *Assembler) Feed(posts *post.Collection) (string, error) {
	if err := posts.RequireRendered(); err != nil {
		return "", err
	}
	data, err := RenderFeed(a.info, posts.Sorted())
	if err != nil {
		return "", err
	}
	return a.write(FeedFile, data)
}
