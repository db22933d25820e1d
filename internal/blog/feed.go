package blog

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Element order in these structs is the wire order; feed readers and
// crawlers get exactly this shape.

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	SelfLink      atomLink  `xml:"atom:link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	Generator     string    `xml:"generator"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Guid        string `xml:"guid"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Category    string `xml:"category,omitempty"`
	Description string `xml:"description"`
}

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	NS      string    `xml:"xmlns,attr"`
	URLs    []siteURL `xml:"url"`
}

type siteURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// RenderRSS builds the RSS 2.0 document for a collection. category is
// empty for the global feed; for a category feed, pass the pre-filtered
// collection and its label, and the build date follows that subset.
func (rn *Renderer) RenderRSS(posts Posts, category string) ([]byte, error) {
	title := rn.cfg.Author.Name
	selfPath := "/rss.xml"
	if category != "" {
		title += " - " + category
		// Slugged so multi-word labels stay URL-safe.
		selfPath = "/rss/" + Slugify(category) + ".xml"
	}

	build := posts.latestDate()
	if build.IsZero() {
		build = time.Now()
	}

	ch := rssChannel{
		Title: title,
		Link:  rn.cfg.BaseURL,
		SelfLink: atomLink{
			Href: rn.cfg.BaseURL + selfPath,
			Rel:  "self",
			Type: "application/rss+xml",
		},
		Description:   rn.aboutLead(),
		Language:      "en",
		Generator:     "weblog/" + Version,
		LastBuildDate: build.Format(time.RFC1123Z),
	}

	for _, p := range posts {
		ch.Items = append(ch.Items, rssItem{
			Title:       p.DisplayTitle(),
			Guid:        strconv.Itoa(p.Guid()),
			Link:        rn.cfg.BaseURL + "/posts/" + p.Slug,
			PubDate:     p.Date.Format(time.RFC1123Z),
			Category:    p.Category,
			Description: paragraphHTML(p.Content),
		})
	}

	out, err := xml.MarshalIndent(rssDoc{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: ch,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// RenderSitemap builds the sitemap: one entry for the home page stamped
// with the newest post's date (today when there are no posts), then one
// entry per post, newest first.
func (rn *Renderer) RenderSitemap(posts Posts) ([]byte, error) {
	newest := posts.latestDate()
	if newest.IsZero() {
		newest = time.Now()
	}

	set := urlSet{NS: sitemapNS}
	set.URLs = append(set.URLs, siteURL{
		Loc:        rn.cfg.BaseURL + "/",
		LastMod:    newest.Format("2006-01-02"),
		ChangeFreq: "daily",
		Priority:   "1.0",
	})
	for _, p := range posts {
		set.URLs = append(set.URLs, siteURL{
			Loc:        rn.cfg.BaseURL + "/posts/" + p.Slug,
			LastMod:    p.Date.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "1.0",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// paragraphHTML joins the non-empty content paragraphs, each wrapped in
// a p tag. The XML marshaler escapes the result, so feed readers see the
// markup as intended once they unescape the description.
func paragraphHTML(content string) string {
	var b strings.Builder
	for _, para := range strings.Split(content, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(para)
		b.WriteString("</p>")
	}
	return b.String()
}

// aboutLead is the channel description: the about text up to its first
// triple newline.
func (rn *Renderer) aboutLead() string {
	lead, _, _ := strings.Cut(rn.cfg.About, "\n\n\n")
	return lead
}
