package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// fenceRE matches the first markdown code fence, with or without a json
// language tag, and captures its body.
var fenceRE = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// SanitizeCompletion strips markdown fencing from a model completion and
// validates that what remains is JSON. When a complete fenced block is
// present, only the interior of the first one survives; anything the model
// wrote around it is discarded.
func SanitizeCompletion(raw string) (json.RawMessage, error) {
	cleaned := strings.TrimSpace(raw)

	if strings.Contains(cleaned, "```") {
		if loc := fenceRE.FindStringSubmatchIndex(cleaned); loc != nil {
			cleaned = cleaned[loc[2]:loc[3]]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, truncateForError(cleaned))
	}
	return json.RawMessage(cleaned), nil
}

func truncateForError(s string) string {
	const max = 128
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
