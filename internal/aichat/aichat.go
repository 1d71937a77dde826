// Package aichat collects AI assistant conversations from local export
// files. ChatGPT exports come in several shapes (a conversation list, a
// wrapper object, or a single conversation; message maps or message lists);
// all of them are handled by the same collector.
package aichat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Conversation is a single AI chat interaction on the target day.
type Conversation struct {
	Timestamp      time.Time
	Service        string // "chatgpt"
	ConversationID string
	UserMessage    string
	AIResponse     string
	Topic          string
	MessageCount   int
}

// excerptLimit caps stored message excerpts.
const excerptLimit = 500

var exportTimeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// Collector reads conversation exports below a configured path.
type Collector struct {
	exportPath string
}

// NewCollector creates a Collector for the given export file or directory.
// An empty path disables collection.
func NewCollector(exportPath string) *Collector {
	return &Collector{exportPath: exportPath}
}

// Collect returns all conversations dated on the given local day. A missing
// or empty export path yields an empty result; unreadable files become
// warnings, not errors.
func (c *Collector) Collect(day time.Time) ([]Conversation, []string) {
	if c.exportPath == "" {
		return nil, nil
	}

	info, err := os.Stat(c.exportPath)
	if err != nil {
		return nil, nil
	}

	var files []string
	if info.IsDir() {
		matches, _ := filepath.Glob(filepath.Join(c.exportPath, "*.json"))
		files = matches
	} else if strings.HasSuffix(c.exportPath, ".json") {
		files = []string{c.exportPath}
	}

	var (
		conversations []Conversation
		warnings      []string
	)
	for _, file := range files {
		parsed, err := parseExportFile(file, day)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("chatgpt export %s: %v", filepath.Base(file), err))
			continue
		}
		conversations = append(conversations, parsed...)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].Timestamp.Before(conversations[j].Timestamp)
	})
	return conversations, warnings
}

// parseExportFile decodes one export file and keeps conversations from the
// target day. Individual malformed conversations are skipped.
func parseExportFile(path string, day time.Time) ([]Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	var raw []any
	switch v := decoded.(type) {
	case []any:
		raw = v
	case map[string]any:
		if list, ok := v["conversations"].([]any); ok {
			raw = list
		} else if list, ok := v["data"].([]any); ok {
			raw = list
		} else {
			raw = []any{v} // single conversation
		}
	default:
		return nil, fmt.Errorf("unexpected export shape")
	}

	var conversations []Conversation
	for _, entry := range raw {
		conv, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if parsed, ok := parseConversation(conv, day); ok {
			conversations = append(conversations, parsed)
		}
	}
	return conversations, nil
}

func parseConversation(conv map[string]any, day time.Time) (Conversation, bool) {
	ts, ok := conversationTime(conv)
	if !ok || !sameLocalDay(ts, day) {
		return Conversation{}, false
	}

	userMessages, aiMessages := extractMessages(conv)
	if len(userMessages) == 0 {
		return Conversation{}, false
	}

	id, _ := conv["id"].(string)
	if id == "" {
		id, _ = conv["conversation_id"].(string)
	}
	if id == "" {
		id = fmt.Sprintf("%d", ts.Unix())
	}

	return Conversation{
		Timestamp:      ts,
		Service:        "chatgpt",
		ConversationID: id,
		UserMessage:    truncate(joinFirst(userMessages, 3), excerptLimit),
		AIResponse:     truncate(joinFirst(aiMessages, 3), excerptLimit),
		Topic:          ExtractTopic(userMessages[0]),
		MessageCount:   len(userMessages) + len(aiMessages),
	}, true
}

// conversationTime reads the first recognized time field of a conversation.
func conversationTime(conv map[string]any) (time.Time, bool) {
	for _, field := range []string{"create_time", "timestamp", "created_at", "update_time"} {
		value, ok := conv[field]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return time.Unix(int64(v), 0), true
		case string:
			for _, format := range exportTimeFormats {
				if ts, err := time.Parse(format, v); err == nil {
					return ts, true
				}
			}
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// extractMessages pulls user and assistant texts from either the mapping
// layout of full exports or a plain messages list.
func extractMessages(conv map[string]any) (user, ai []string) {
	if mapping, ok := conv["mapping"].(map[string]any); ok {
		// Map iteration order is random; sort keys so excerpt and topic
		// derivation stay deterministic.
		keys := make([]string, 0, len(mapping))
		for k := range mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			node, ok := mapping[k].(map[string]any)
			if !ok {
				continue
			}
			message, ok := node["message"].(map[string]any)
			if !ok {
				continue
			}

			role := ""
			if author, ok := message["author"].(map[string]any); ok {
				role, _ = author["role"].(string)
			}

			text := ""
			switch content := message["content"].(type) {
			case map[string]any:
				if parts, ok := content["parts"].([]any); ok {
					var segments []string
					for _, p := range parts {
						if s, ok := p.(string); ok {
							segments = append(segments, s)
						}
					}
					text = strings.Join(segments, " ")
				}
			case string:
				text = content
			}
			if text == "" {
				continue
			}

			switch role {
			case "user":
				user = append(user, text)
			case "assistant":
				ai = append(ai, text)
			}
		}
		return user, ai
	}

	if messages, ok := conv["messages"].([]any); ok {
		for _, entry := range messages {
			message, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			role, _ := message["role"].(string)
			content, _ := message["content"].(string)
			if content == "" {
				continue
			}
			switch role {
			case "user":
				user = append(user, content)
			case "assistant":
				ai = append(ai, content)
			}
		}
	}
	return user, ai
}

// ExtractTopic derives a short topic label from a user message.
func ExtractTopic(text string) string {
	if text == "" {
		return "General"
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "python", "code", "programming", "debug", "function"):
		return "Programming"
	case containsAny(lower, "explain", "what is", "how to", "tutorial"):
		return "Learning"
	case containsAny(lower, "write", "create", "generate", "make"):
		return "Creation"
	case containsAny(lower, "fix", "error", "problem", "issue"):
		return "Problem Solving"
	case containsAny(lower, "project", "plan", "strategy", "approach"):
		return "Planning"
	}

	words := strings.Fields(text)
	if len(words) > 4 {
		words = words[:4]
	}
	if len(words) == 0 {
		return "General"
	}
	return titleWords(strings.Join(words, " "))
}

func sameLocalDay(ts, day time.Time) bool {
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func joinFirst(messages []string, n int) string {
	if len(messages) > n {
		messages = messages[:n]
	}
	return strings.Join(messages, " | ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
