package activity

import (
	"fmt"
	"strings"

	"github.com/gitcrackeruk/daylog/internal/aichat"
	"github.com/gitcrackeruk/daylog/internal/browser"
	"github.com/gitcrackeruk/daylog/internal/gitlog"
)

// Well-known domain table, consulted after the configured keyword lists.
var (
	workDomains          = []string{"github.com", "stackoverflow.com", "docs.microsoft.com"}
	entertainmentDomains = []string{"youtube.com", "netflix.com", "twitch.tv"}
	learningDomains      = []string{"wikipedia.org", "coursera.org", "udemy.com"}
)

// Normalizer maps each source record type into a unified Activity. One
// constructor exists per source, so an unhandled source is a compile-time
// hole, not a silently dropped record.
type Normalizer struct {
	workKeywords          []string
	learningKeywords      []string
	entertainmentKeywords []string
}

// NewNormalizer creates a Normalizer using the configured category keyword
// lists. Matching is case-insensitive substring.
func NewNormalizer(work, learning, entertainment []string) *Normalizer {
	return &Normalizer{
		workKeywords:          lowerAll(work),
		learningKeywords:      lowerAll(learning),
		entertainmentKeywords: lowerAll(entertainment),
	}
}

// Browser normalizes a browser visit. Category precedence: configured
// keyword lists (work, then learning, then entertainment) over URL, title,
// and domain; then the well-known domain table; then "general".
func (n *Normalizer) Browser(v browser.Visit) Activity {
	return Activity{
		Timestamp: v.Timestamp,
		Source:    SourceBrowser,
		Title:     v.Title,
		Category:  n.categorizeBrowser(v),
		Details: map[string]any{
			"url":         v.URL,
			"domain":      v.Domain,
			"browser":     v.Browser,
			"visit_count": v.VisitCount,
		},
	}
}

// Commit normalizes a git commit. Category comes from a keyword scan over
// the commit message and its derived topic, defaulting to "learning" for
// unmatched content. Note this default intentionally differs from the
// browser default.
func (n *Normalizer) Commit(c gitlog.Commit) Activity {
	topic := aichat.ExtractTopic(c.Message)
	return Activity{
		Timestamp: c.Timestamp,
		Source:    SourceGit,
		Title:     fmt.Sprintf("%s: %s", c.Repository, c.Message),
		Category:  categorizeContent(c.Message, topic),
		Details: map[string]any{
			"activity_type":  "commit",
			"repository":     c.Repository,
			"branch":         c.Branch,
			"commit_hash":    c.Hash,
			"commit_message": c.Message,
			"author":         c.Author,
			"files_changed":  c.Files,
			"insertions":     c.Insertions,
			"deletions":      c.Deletions,
			"time_guessed":   c.TimeGuessed,
		},
	}
}

// BranchSwitch normalizes a reflog checkout.
func (n *Normalizer) BranchSwitch(b gitlog.BranchSwitch) Activity {
	message := fmt.Sprintf("Switched from %s to %s", b.FromBranch, b.ToBranch)
	return Activity{
		Timestamp: b.Timestamp,
		Source:    SourceGit,
		Title:     message,
		Category:  categorizeContent(message, ""),
		Details: map[string]any{
			"activity_type": "branch_switch",
			"repository":    b.Repository,
			"branch":        b.ToBranch,
			"from_branch":   b.FromBranch,
			"author":        b.Actor,
		},
	}
}

// Chat normalizes an AI conversation.
func (n *Normalizer) Chat(c aichat.Conversation) Activity {
	return Activity{
		Timestamp: c.Timestamp,
		Source:    SourceAIChat,
		Title:     fmt.Sprintf("%s Chat: %s", capitalize(c.Service), c.Topic),
		Category:  categorizeContent(c.UserMessage, c.Topic),
		Details: map[string]any{
			"ai_service":      c.Service,
			"topic":           c.Topic,
			"conversation_id": c.ConversationID,
			"user_message":    c.UserMessage,
			"ai_response":     c.AIResponse,
			"message_count":   c.MessageCount,
		},
	}
}

func (n *Normalizer) categorizeBrowser(v browser.Visit) Category {
	urlLower := strings.ToLower(v.URL)
	titleLower := strings.ToLower(v.Title)
	domainLower := strings.ToLower(v.Domain)

	match := func(keywords []string) bool {
		for _, kw := range keywords {
			if strings.Contains(urlLower, kw) || strings.Contains(titleLower, kw) || strings.Contains(domainLower, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case match(n.workKeywords):
		return CategoryWork
	case match(n.learningKeywords):
		return CategoryLearning
	case match(n.entertainmentKeywords):
		return CategoryEntertainment
	}

	switch {
	case domainContains(domainLower, workDomains):
		return CategoryWork
	case domainContains(domainLower, entertainmentDomains):
		return CategoryEntertainment
	case domainContains(domainLower, learningDomains):
		return CategoryLearning
	}

	return CategoryGeneral
}

// categorizeContent classifies git and AI content by first-match keyword
// scan. Unmatched content defaults to "learning".
func categorizeContent(text, topic string) Category {
	content := strings.ToLower(topic + " " + text)

	programming := []string{"programming", "code", "debug", "function", "python", "javascript", "git", "api"}
	learning := []string{"learning", "explain", "what is", "how to", "tutorial", "understand"}
	problem := []string{"problem solving", "fix", "error", "issue", "help", "troubleshoot"}
	creative := []string{"creation", "write", "generate", "create", "design", "plan"}

	switch {
	case containsAny(content, programming):
		return CategoryWork
	case containsAny(content, learning):
		return CategoryLearning
	case containsAny(content, problem):
		return CategoryWork
	case containsAny(content, creative):
		return CategoryWork
	}

	return CategoryLearning
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func domainContains(domain string, table []string) bool {
	for _, d := range table {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
