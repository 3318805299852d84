// Package agents wraps the per-capability LLM calls: visual inspection,
// classification, price estimation, description generation, image
// augmentation, photo recommendations and generation lookup. Each agent is a
// single request/response call; none of them panic — failures come back as
// errors or degraded results the orchestrating handler folds into the
// contract.
package agents

import (
	"strconv"
	"strings"

	"carad/llm"
)

// LLM is the client every agent calls through. main sets it at startup;
// tests replace it with a fake.
var LLM llm.Client

func Init(client llm.Client) {
	LLM = client
}

// Tolerant coercions for the untyped JSON the models return.

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	}
	return ""
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
