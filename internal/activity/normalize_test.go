package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gitcrackeruk/daylog/internal/aichat"
	"github.com/gitcrackeruk/daylog/internal/browser"
	"github.com/gitcrackeruk/daylog/internal/gitlog"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(
		[]string{"github", "jira"},
		[]string{"tutorial", "course"},
		[]string{"youtube", "reddit"},
	)
}

func TestBrowser_KeywordPrecedence(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name  string
		visit browser.Visit
		want  Category
	}{
		{
			name:  "work keyword in url",
			visit: browser.Visit{URL: "https://github.com/acme/api", Title: "Pull requests", Domain: "github.com"},
			want:  CategoryWork,
		},
		{
			name:  "learning keyword in title",
			visit: browser.Visit{URL: "https://example.com/x", Title: "Go Tutorial Part 3", Domain: "example.com"},
			want:  CategoryLearning,
		},
		{
			name:  "entertainment keyword case-insensitive",
			visit: browser.Visit{URL: "https://old.Reddit.com/r/golang", Title: "front page", Domain: "old.reddit.com"},
			want:  CategoryEntertainment,
		},
		{
			// "youtube" is configured as entertainment but the work
			// list is checked first, so a work hit wins.
			name:  "work list beats entertainment list",
			visit: browser.Visit{URL: "https://youtube.com/watch?v=1", Title: "GitHub Actions deep dive", Domain: "youtube.com"},
			want:  CategoryWork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Browser(tt.visit).Category)
		})
	}
}

func TestBrowser_DomainTableFallback(t *testing.T) {
	n := NewNormalizer(nil, nil, nil)

	tests := []struct {
		domain string
		want   Category
	}{
		{"stackoverflow.com", CategoryWork},
		{"www.netflix.com", CategoryEntertainment},
		{"en.wikipedia.org", CategoryLearning},
		{"some-random-blog.net", CategoryGeneral},
	}

	for _, tt := range tests {
		v := browser.Visit{URL: "https://" + tt.domain + "/", Title: "page", Domain: tt.domain}
		assert.Equal(t, tt.want, n.Browser(v).Category, tt.domain)
	}
}

func TestBrowser_DefaultIsGeneral(t *testing.T) {
	n := testNormalizer()
	v := browser.Visit{URL: "https://weather.example.net/", Title: "Forecast", Domain: "weather.example.net"}
	assert.Equal(t, CategoryGeneral, n.Browser(v).Category)
}

func TestCommit_TitleAndCategory(t *testing.T) {
	n := testNormalizer()

	ts := time.Date(2025, 3, 4, 10, 15, 0, 0, time.Local)
	a := n.Commit(gitlog.Commit{
		Hash:       "abc1234",
		Author:     "Alice",
		Timestamp:  ts,
		Message:    "Fix login bug",
		Repository: "daylog",
		Branch:     "feature/x",
		Files:      []string{"auth/login.go"},
		Insertions: 3,
		Deletions:  1,
	})

	assert.Equal(t, SourceGit, a.Source)
	assert.Equal(t, "daylog: Fix login bug", a.Title)
	assert.Equal(t, CategoryWork, a.Category, `"fix" is a problem-solving keyword`)
	assert.True(t, a.Timestamp.Equal(ts))
	assert.Equal(t, "commit", a.Details["activity_type"])
	assert.Equal(t, "abc1234", a.Details["commit_hash"])
	assert.Equal(t, false, a.Details["time_guessed"])
}

func TestCommit_UnmatchedMessageDefaultsToLearning(t *testing.T) {
	n := testNormalizer()
	a := n.Commit(gitlog.Commit{Message: "Bump minor version", Repository: "daylog"})
	assert.Equal(t, CategoryLearning, a.Category)
}

func TestBranchSwitch(t *testing.T) {
	n := testNormalizer()
	ts := time.Date(2025, 3, 4, 9, 58, 0, 0, time.Local)

	a := n.BranchSwitch(gitlog.BranchSwitch{
		Timestamp:  ts,
		FromBranch: "main",
		ToBranch:   "feature/x",
		Repository: "daylog",
		Actor:      "Alice",
	})

	assert.Equal(t, SourceGit, a.Source)
	assert.Equal(t, "Switched from main to feature/x", a.Title)
	assert.Equal(t, "branch_switch", a.Details["activity_type"])
	assert.Equal(t, "feature/x", a.Details["branch"])
	assert.Equal(t, "main", a.Details["from_branch"])
}

func TestChat(t *testing.T) {
	n := testNormalizer()
	ts := time.Date(2025, 3, 4, 14, 30, 0, 0, time.Local)

	a := n.Chat(aichat.Conversation{
		Timestamp:      ts,
		Service:        "chatgpt",
		ConversationID: "conv-1",
		UserMessage:    "How do I debug a goroutine leak?",
		Topic:          "Programming",
		MessageCount:   6,
	})

	assert.Equal(t, SourceAIChat, a.Source)
	assert.Equal(t, "Chatgpt Chat: Programming", a.Title)
	assert.Equal(t, CategoryWork, a.Category)
	assert.Equal(t, 6, a.Details["message_count"])
}

func TestCategorizeContent(t *testing.T) {
	tests := []struct {
		text  string
		topic string
		want  Category
	}{
		{"refactor the python module", "", CategoryWork},
		{"how to bake bread", "", CategoryLearning},
		{"troubleshoot flaky CI", "", CategoryWork},
		{"design a birthday card", "", CategoryWork},
		{"misc notes", "", CategoryLearning},
		{"misc notes", "Programming", CategoryWork},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeContent(tt.text, tt.topic), "%q/%q", tt.text, tt.topic)
	}
}
