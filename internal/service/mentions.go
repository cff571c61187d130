package service

import "regexp"

var mentionPattern = regexp.MustCompile(`@([a-z0-9_]{2,30})\b`)

// extractMentions returns the distinct handles @-mentioned in content,
// in order of first appearance.
func extractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	handles := make([]string, 0, len(matches))
	for _, m := range matches {
		handle := m[1]
		if _, dup := seen[handle]; dup {
			continue
		}
		seen[handle] = struct{}{}
		handles = append(handles, handle)
	}
	return handles
}
