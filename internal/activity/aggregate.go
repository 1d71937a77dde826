package activity

import (
	"sort"
	"time"
)

// titleKeyLen is the number of leading title characters that participate in
// the deduplication identity.
const titleKeyLen = 100

// dedupKey identifies duplicate activities: same source, same
// minute-truncated timestamp, same title prefix.
type dedupKey struct {
	source Source
	minute int64
	title  string
}

// Combine merges normalized activity groups into one stream: duplicates are
// dropped keeping the first occurrence in stable input order, and the
// survivors are sorted ascending by timestamp. Combining an already
// deduplicated stream is a no-op.
func Combine(groups ...[]Activity) []Activity {
	seen := make(map[dedupKey]struct{})
	var combined []Activity

	for _, group := range groups {
		for _, a := range group {
			key := dedupKey{
				source: a.Source,
				minute: a.Timestamp.Truncate(time.Minute).Unix(),
				title:  titlePrefix(a.Title),
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			combined = append(combined, a)
		}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Timestamp.Before(combined[j].Timestamp)
	})

	return combined
}

// Statistics computes summary counts over a combined activity stream.
func Statistics(activities []Activity) Stats {
	stats := Stats{
		Total:      len(activities),
		ByCategory: make(map[Category]int),
		BySource:   make(map[Source]int),
		ByHour:     make(map[int]int),
	}

	for i, a := range activities {
		if i == 0 || a.Timestamp.Before(stats.Start) {
			stats.Start = a.Timestamp
		}
		if i == 0 || a.Timestamp.After(stats.End) {
			stats.End = a.Timestamp
		}
		stats.ByCategory[a.Category]++
		stats.BySource[a.Source]++
		stats.ByHour[a.Timestamp.Hour()]++
	}

	return stats
}

// ProductivityScore is the percentage of work and learning activities,
// rounded to one decimal place.
func (s Stats) ProductivityScore() float64 {
	if s.Total == 0 {
		return 0
	}
	productive := s.ByCategory[CategoryWork] + s.ByCategory[CategoryLearning]
	score := float64(productive) / float64(s.Total) * 100
	return float64(int(score*10+0.5)) / 10
}

// MostActiveHour returns the hour of day with the most activity, or -1 when
// the stream is empty.
func (s Stats) MostActiveHour() int {
	best, bestCount := -1, 0
	for hour := 0; hour < 24; hour++ {
		if count := s.ByHour[hour]; count > bestCount {
			best, bestCount = hour, count
		}
	}
	return best
}

func titlePrefix(title string) string {
	if len(title) <= titleKeyLen {
		return title
	}
	return title[:titleKeyLen]
}
