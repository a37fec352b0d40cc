package services

import (
	"regexp"
	"strings"
)

// codeFencePattern matches a response wrapped in a single markdown code
// fence, optionally tagged json, anchored to the full string.
var codeFencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// CleanJSONResponse strips one leading/trailing code-fence wrapper that the
// model tends to add around structured output. Input without a fence comes
// back trimmed but otherwise unchanged, so the cleanup is idempotent.
func CleanJSONResponse(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if m := codeFencePattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}

	return trimmed
}
