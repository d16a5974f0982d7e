package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/build-triage/internal/domain"
)

// ExtractJSONBlock returns the first balanced top-level JSON object or array
// embedded in s. It tracks nested {} / [] depth rather than slicing between
// the first and last brace, so commentary around (or after) the block is
// tolerated. Returns "" when no balanced block exists.
func ExtractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		start = strings.IndexByte(s, '[')
	}
	if start == -1 {
		return ""
	}

	var stack []byte
	for i := start; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || ch != stack[len(stack)-1] {
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ParseResponse extracts and schema-validates the collaborator's raw text.
// The returned reason is empty on success; any parse failure or schema
// violation yields a tagged reason, never a panic or error control flow.
func ParseResponse(raw string) (domain.AnalysisResult, string) {
	var zero domain.AnalysisResult

	if strings.TrimSpace(raw) == "" {
		return zero, "empty response"
	}

	candidate := strings.TrimSpace(raw)
	if !strings.HasPrefix(candidate, "{") && !strings.HasPrefix(candidate, "[") {
		candidate = ExtractJSONBlock(candidate)
	}
	if candidate == "" {
		return zero, "no json block found"
	}

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return zero, fmt.Sprintf("json decode error: %v", err)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return zero, "schema validation failed: top-level value must be an object"
	}
	if reason := validateSchema(obj); reason != "" {
		return zero, reason
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return zero, fmt.Sprintf("schema validation failed: %v", err)
	}
	return result, ""
}

// validateSchema enforces the strict result shape: top-level object holding a
// root_causes array and a summary array, with every root cause carrying
// non-null cause, confidence, next_action and a non-empty evidence array.
func validateSchema(obj map[string]any) string {
	causes, ok := obj["root_causes"].([]any)
	if !ok {
		return "schema validation failed: root_causes must be an array"
	}
	if _, ok := obj["summary"].([]any); !ok {
		return "schema validation failed: summary must be an array"
	}

	for i, rc := range causes {
		m, ok := rc.(map[string]any)
		if !ok {
			return fmt.Sprintf("schema validation failed: root_causes[%d] must be an object", i)
		}
		for _, key := range []string{"cause", "confidence", "next_action"} {
			if v, present := m[key]; !present || v == nil {
				return fmt.Sprintf("schema validation failed: root_causes[%d] missing %s", i, key)
			}
		}
		ev, ok := m["evidence"].([]any)
		if !ok || len(ev) == 0 {
			return fmt.Sprintf("schema validation failed: root_causes[%d] requires non-empty evidence", i)
		}
	}
	return ""
}
