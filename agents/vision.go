package agents

import (
	"context"
	"fmt"

	"carad/llm"
	"carad/models"
)

// VisionResult is the typed view over the inspection agent's reply. Raw keeps
// the untouched payload — the description agent and the regenerate flow feed
// it back verbatim.
type VisionResult struct {
	DamageFlag         string
	ConditionScore     float64
	ReliabilityScore   float64
	RepaintProbability float64
	Defects            []models.DefectItem
	RawDescription     string
	Raw                map[string]any
}

// RunVision inspects the uploaded photos for visible condition and damage.
func RunVision(ctx context.Context, imagesBase64 []string) (*VisionResult, error) {
	text, err := LLM.ChatVision(ctx, visionPrompt, imagesBase64, llm.ChatOptions{MaxTokens: 4096})
	if err != nil {
		return nil, fmt.Errorf("vision agent: %w", err)
	}
	raw := map[string]any{}
	if err := llm.ExtractJSONObject(text, &raw); err != nil {
		return nil, fmt.Errorf("vision agent: %w", err)
	}
	return visionFromRaw(raw), nil
}

func visionFromRaw(raw map[string]any) *VisionResult {
	res := &VisionResult{
		DamageFlag:     asString(raw["damage_flag"]),
		RawDescription: asString(raw["raw_text_description"]),
		Raw:            raw,
	}
	if res.DamageFlag == "" {
		res.DamageFlag = models.DamageFlagUndetermined
	}
	if f, ok := asFloat(raw["visual_condition_score"]); ok {
		res.ConditionScore = f
	}
	res.ReliabilityScore = 0.5
	if f, ok := asFloat(raw["inspection_reliability_score"]); ok {
		res.ReliabilityScore = f
	}
	if f, ok := asFloat(raw["repaint_probability"]); ok {
		res.RepaintProbability = f
	}
	res.Defects = mapDefects(raw["defects"])
	return res
}

// mapDefects converts the agent's free-form defect list into contract items,
// preserving order and skipping entries that are not objects. No dedup.
func mapDefects(v any) []models.DefectItem {
	items, ok := v.([]any)
	if !ok {
		return []models.DefectItem{}
	}
	out := make([]models.DefectItem, 0, len(items))
	for _, item := range items {
		d, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.DefectItem{
			Type:     models.NormalizeDefectType(asString(d["type"])),
			Severity: models.NormalizeSeverity(asString(d["severity"])),
			Location: asString(d["location"]),
			BodyPart: asString(d["body_part"]),
		})
	}
	return out
}
