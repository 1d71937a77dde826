// Package browser extracts visit history from local browser databases.
//
// Two vendor families are supported through the same extractor: the Chromium
// family (Chrome, Edge) sharing one schema and epoch, and Firefox with its
// own schema and epoch. The extractor works on a snapshot of the history
// store so a running browser never blocks collection.
package browser

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gitcrackeruk/daylog/internal/snapshot"
)

// Visit is a single browser history entry, immutable once extracted.
type Visit struct {
	Timestamp  time.Time
	URL        string
	Title      string
	VisitCount int
	Browser    string
	Domain     string
}

const chromiumQuery = `
	SELECT
		urls.url,
		urls.title,
		urls.visit_count,
		visits.visit_time
	FROM urls
	JOIN visits ON urls.id = visits.url
	WHERE visits.visit_time >= ? AND visits.visit_time < ?
	ORDER BY visits.visit_time DESC
`

const firefoxQuery = `
	SELECT
		moz_places.url,
		moz_places.title,
		moz_places.visit_count,
		moz_historyvisits.visit_date
	FROM moz_places
	JOIN moz_historyvisits ON moz_places.id = moz_historyvisits.place_id
	WHERE moz_historyvisits.visit_date >= ? AND moz_historyvisits.visit_date < ?
	ORDER BY moz_historyvisits.visit_date DESC
`

// vendor binds a browser ID to its history schema and timestamp epoch.
type vendor struct {
	epoch Epoch
	query string
}

var vendors = map[string]vendor{
	"chrome":  {EpochWindows, chromiumQuery},
	"edge":    {EpochWindows, chromiumQuery},
	"firefox": {EpochUnix, firefoxQuery},
}

// Extractor reads day-bounded visit history from vendor history stores.
type Extractor struct {
	excludeTerms []string
}

// NewExtractor creates an Extractor that drops any visit whose URL or title
// contains one of the given terms (case-insensitive).
func NewExtractor(excludeTerms []string) *Extractor {
	terms := make([]string, len(excludeTerms))
	for i, t := range excludeTerms {
		terms[i] = strings.ToLower(t)
	}
	return &Extractor{excludeTerms: terms}
}

// Extract returns all visits recorded on the given local day in the history
// store at storePath. A missing store yields an empty result, not an error.
// Malformed rows are skipped.
func (e *Extractor) Extract(ctx context.Context, browserID, storePath string, day time.Time) ([]Visit, error) {
	v, ok := vendors[browserID]
	if !ok {
		return nil, fmt.Errorf("unknown browser %q", browserID)
	}

	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		return nil, nil
	}

	snapPath, cleanup, err := snapshot.Take(storePath)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s history: %w", browserID, err)
	}
	defer cleanup()

	db, err := sql.Open("sqlite3", snapPath)
	if err != nil {
		return nil, fmt.Errorf("open %s history: %w", browserID, err)
	}
	defer db.Close()

	lo, hi := v.epoch.DayBounds(day)

	rows, err := db.QueryContext(ctx, v.query, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query %s history: %w", browserID, err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			rawURL     string
			title      sql.NullString
			visitCount sql.NullInt64
			encodedTS  int64
		)
		if err := rows.Scan(&rawURL, &title, &visitCount, &encodedTS); err != nil {
			continue // malformed row, not fatal
		}

		if e.excluded(rawURL, title.String) {
			continue
		}

		visitTitle := title.String
		if visitTitle == "" {
			visitTitle = "Untitled"
		}

		visits = append(visits, Visit{
			Timestamp:  v.epoch.Time(encodedTS),
			URL:        rawURL,
			Title:      visitTitle,
			VisitCount: int(visitCount.Int64),
			Browser:    browserID,
			Domain:     extractDomain(rawURL),
		})
	}
	if err := rows.Err(); err != nil {
		return visits, fmt.Errorf("read %s history rows: %w", browserID, err)
	}

	return visits, nil
}

// FindFirefoxStores returns the places.sqlite paths of all default Firefox
// profiles under profilesDir. A missing profiles directory yields nil.
func FindFirefoxStores(profilesDir string) []string {
	matches, err := filepath.Glob(filepath.Join(profilesDir, "*.default*"))
	if err != nil {
		return nil
	}

	var stores []string
	for _, profile := range matches {
		places := filepath.Join(profile, "places.sqlite")
		if _, err := os.Stat(places); err == nil {
			stores = append(stores, places)
		}
	}
	return stores
}

// excluded reports whether a visit should be dropped for privacy reasons.
// Terms match against both URL and title independently.
func (e *Extractor) excluded(rawURL, title string) bool {
	urlLower := strings.ToLower(rawURL)
	titleLower := strings.ToLower(title)

	for _, term := range e.excludeTerms {
		if strings.Contains(urlLower, term) || strings.Contains(titleLower, term) {
			return true
		}
	}
	return false
}

// extractDomain pulls the lower-cased host from a URL, "unknown" when the
// URL cannot be parsed.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.ToLower(u.Host)
}
