// Package gitlog parses git command output into structured activity records
// and collects them from local repositories.
//
// Parsing is a pure function from raw text to records, independent of how
// the text was produced, so it can be tested against captured fixtures.
package gitlog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// headerFields is the pretty format used for git log: %H|%an|%ae|%ai|%s|%b.
// Only the first five delimiters are structural; a | inside the body stays
// part of the message.
const headerFields = 6

// commitTimeFormats are tried in order against the %ai header field.
var commitTimeFormats = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// reflogCheckout matches an iso-dated reflog checkout line.
var reflogCheckout = regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}).*moving from (\S+) to (\S+)`)

// ParseLog parses `git log --pretty=format:%H|%an|%ae|%ai|%s|%b --numstat`
// output. Each block is a header line followed by zero or more numstat lines
// (insertions<TAB>deletions<TAB>path, "-" for binary counts). A header with
// an unparsable timestamp still yields a record, flagged TimeGuessed with the
// current time as fallback.
func ParseLog(raw string) []Commit {
	var commits []Commit

	lines := strings.Split(strings.TrimSpace(raw), "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || !strings.Contains(line, "|") {
			i++
			continue
		}

		parts := strings.SplitN(line, "|", headerFields)
		if len(parts) < 5 {
			i++
			continue
		}

		body := ""
		if len(parts) > 5 {
			body = parts[5]
		}

		ts, guessed := parseCommitTime(parts[3])

		commit := Commit{
			Hash:        parts[0],
			Author:      parts[1],
			AuthorEmail: parts[2],
			Timestamp:   ts,
			TimeGuessed: guessed,
			Message:     strings.TrimSpace(parts[4] + " " + body),
		}

		// Consume the numstat lines belonging to this commit.
		i++
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" && !strings.Contains(lines[i], "|") {
			statLine := strings.TrimSpace(lines[i])
			i++

			statParts := strings.Split(statLine, "\t")
			if len(statParts) < 3 {
				continue
			}

			ins, insOK := parseStatCount(statParts[0])
			dels, delsOK := parseStatCount(statParts[1])
			if !insOK || !delsOK {
				continue // malformed stat line, skipped
			}

			commit.Insertions += ins
			commit.Deletions += dels
			commit.Files = append(commit.Files, statParts[2])
		}

		commits = append(commits, commit)
	}

	return commits
}

// ParseReflog parses `git reflog --date=iso` output into branch switches
// falling inside the half-open [start, end) window. Malformed lines are
// skipped silently.
func ParseReflog(raw string, start, end time.Time) []BranchSwitch {
	var switches []BranchSwitch

	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, "checkout:") || !strings.Contains(line, "moving from") {
			continue
		}

		m := reflogCheckout.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		ts, err := time.ParseInLocation("2006-01-02 15:04:05", m[1], time.Local)
		if err != nil {
			continue
		}

		if ts.Before(start) || !ts.Before(end) {
			continue
		}

		switches = append(switches, BranchSwitch{
			Timestamp:  ts,
			FromBranch: m[2],
			ToBranch:   m[3],
		})
	}

	return switches
}

// parseCommitTime tries the known header formats, falling back to "now" with
// a guessed flag when none match.
func parseCommitTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, format := range commitTimeFormats {
		if ts, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return ts, false
		}
	}
	return time.Now(), true
}

// parseStatCount parses one numstat count. The "-" placeholder git emits for
// binary files counts as zero.
func parseStatCount(s string) (int, bool) {
	if s == "-" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
