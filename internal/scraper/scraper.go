// internal/scraper/scraper.go
package scraper

import (
    "context"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/PuerkitoBio/goquery"
)

const DefaultTimeout = 10 * time.Second

// Scraper fetches a page and extracts readable text without executing
// JavaScript. Extraction is best effort: any fetch or parse failure yields
// empty text, never an error the caller has to handle.
type Scraper struct {
    Client *http.Client
}

func New(timeout time.Duration) *Scraper {
    if timeout <= 0 {
        timeout = DefaultTimeout
    }
    return &Scraper{Client: &http.Client{Timeout: timeout}}
}

// ExtractText pulls the readable text out of url. Main content containers
// are preferred; headers, paragraphs and list items across the whole page
// are the fallback.
func (s *Scraper) ExtractText(ctx context.Context, url string) string {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        log.Println("⚠️ scrape skipped, bad url:", url, err)
        return ""
    }

    resp, err := s.Client.Do(req)
    if err != nil {
        log.Println("⚠️ scrape failed:", url, err)
        return ""
    }
    defer resp.Body.Close()

    if resp.StatusCode >= 400 {
        log.Println("⚠️ scrape failed:", url, "status", resp.StatusCode)
        return ""
    }

    doc, err := goquery.NewDocumentFromReader(resp.Body)
    if err != nil {
        log.Println("⚠️ scrape parse failed:", url, err)
        return ""
    }

    var parts []string
    collect := func(_ int, sel *goquery.Selection) {
        if text := strings.TrimSpace(sel.Text()); text != "" {
            parts = append(parts, text)
        }
    }

    doc.Find("main, article, section").Find("h1, h2, h3, p, li").Each(collect)
    if len(parts) == 0 {
        doc.Find("h1, h2, h3").Each(collect)
        doc.Find("p").Each(collect)
        doc.Find("li").Each(collect)
    }

    return strings.Join(parts, "\n")
}
