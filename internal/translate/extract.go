package translate

import "strings"

const maxEchoedResponse = 512

// Extract returns the span from the first '{' to the last '}' of a completion.
func Extract(completion string) (string, error) {
	start := strings.IndexByte(completion, '{')
	end := strings.LastIndexByte(completion, '}')
	if start < 0 || end < start {
		return "", &ExtractionError{Response: truncate(completion, maxEchoedResponse), Err: ErrNoJSON}
	}
	return completion[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
