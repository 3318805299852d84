package agents

import (
	"context"
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"carad/llm"
)

// Generation lists change roughly never, so answers are cached per
// brand+model. Any failure yields an empty list — the dropdown just stays
// empty and the field falls back to free text.

const generationsCacheSize = 256

var generationsCache, _ = lru.New[string, []string](generationsCacheSize)

// Generations returns the known generations for a brand+model, oldest first
// where the model manages that. Empty brand or model short-circuits to [].
func Generations(ctx context.Context, brand, model string) []string {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	if brand == "" || model == "" {
		return []string{}
	}

	key := strings.ToLower(brand) + "|" + strings.ToLower(model)
	if cached, ok := generationsCache.Get(key); ok {
		return cached
	}

	text, err := LLM.Chat(ctx, fmt.Sprintf(generationsPrompt, brand, model), llm.ChatOptions{MaxTokens: 1024})
	if err != nil {
		log.Printf("generations agent: %v", err)
		return []string{}
	}
	var items []string
	if err := llm.ExtractJSONArray(text, &items); err != nil {
		log.Printf("generations agent: parse: %v", err)
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	generationsCache.Add(key, out)
	return out
}
