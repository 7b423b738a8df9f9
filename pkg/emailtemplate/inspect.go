package emailtemplate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Summary describes the references found in a rendered document
type Summary struct {
	Images []string `json:"images"`
	Links  []string `json:"links"`
	Bytes  int      `json:"bytes"`
}

// Inspect parses a rendered document and collects image sources and link
// targets in document order.
func Inspect(document string) (*Summary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered document: %w", err)
	}

	summary := &Summary{
		Images: []string{},
		Links:  []string{},
		Bytes:  len(document),
	}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		summary.Images = append(summary.Images, src)
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		summary.Links = append(summary.Links, href)
	})
	return summary, nil
}

