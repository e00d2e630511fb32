package completion

import "strings"

// StripCodeFence removes a markdown code fence wrapping the whole response,
// e.g. "```json\n[...]\n```". Fences anywhere other than the trimmed string
// boundaries are left alone.
func StripCodeFence(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	body := strings.TrimPrefix(trimmed, "```")
	// Drop the info string ("json", "JSON", ...) up to the first newline
	if idx := strings.IndexByte(body, '\n'); idx != -1 {
		if info := strings.TrimSpace(body[:idx]); !strings.ContainsAny(info, "[{\"") {
			body = body[idx+1:]
		}
	} else if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
