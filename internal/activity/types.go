// Package activity defines the unified activity record and the machinery
// that turns source-specific records into one deduplicated, time-ordered
// stream.
package activity

import "time"

// Source identifies where an activity record came from. The set is closed:
// every source has exactly one Normalizer constructor.
type Source string

const (
	SourceBrowser Source = "browser"
	SourceGit     Source = "git"
	SourceAIChat  Source = "ai_chat"
)

// Category is the coarse classification assigned during normalization.
type Category string

const (
	CategoryWork          Category = "work"
	CategoryLearning      Category = "learning"
	CategoryEntertainment Category = "entertainment"
	CategoryGeneral       Category = "general"
)

// Activity is the unified, source-agnostic record consumed by reporting.
// Details carries the source-specific payload for downstream rendering.
type Activity struct {
	Timestamp time.Time
	Source    Source
	Title     string
	Category  Category
	Details   map[string]any
}

// Stats summarizes one day's combined activity stream.
type Stats struct {
	Total      int
	Start      time.Time
	End        time.Time
	ByCategory map[Category]int
	BySource   map[Source]int
	ByHour     map[int]int // hour of day 0-23
}
