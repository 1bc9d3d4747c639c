package llm

import (
	"strings"
)

// ParseTopicList turns a completion into a topic list: one topic per line,
// leading list markers (hyphens, bullets, spaces) stripped, case-insensitive
// dedup preserving first occurrence, capped at max entries.
func ParseTopicList(s string, max int) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(s, "\n") {
		topic := strings.Trim(line, "-*• \t\r")
		if topic == "" {
			continue
		}
		key := strings.ToLower(topic)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, topic)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// ExtractJSONObject pulls the first top-level JSON object out of a
// completion, tolerating markdown code fences and surrounding prose.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
