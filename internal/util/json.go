package util

import "strings"

// ExtractJSONObject pulls the outermost {...} span out of text that may wrap
// a JSON object in prose. It is a best-effort signal extractor: the caller
// still has to unmarshal and validate whatever comes back. Returns false
// when no object delimiters are present.
func ExtractJSONObject(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)

	// Some models wrap their reasoning in <think> blocks ahead of the JSON.
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return cleaned[start : end+1], true
}
