package models

import "strings"

// The vision agent reports defect severity and type in Russian free text.
// These tables map it onto the contract enums.

var severityMap = map[string]string{
	"слабая":    "weak",
	"умеренная": "moderate",
	"сильная":   "strong",
	"weak":      "weak",
	"moderate":  "moderate",
	"strong":    "strong",
}

var defectTypeMap = map[string]string{
	"царапина":    "scratch",
	"вмятина":     "dent",
	"скол":        "chip",
	"коррозия":    "corrosion",
	"загрязнение": "chip",
	"окрашена":    "painted",
	"перекрашена": "painted",
	"заменена":    "replaced",
}

var knownDefectTypes = map[string]bool{
	"scratch":   true,
	"dent":      true,
	"chip":      true,
	"corrosion": true,
	"replaced":  true,
	"painted":   true,
}

// NormalizeSeverity maps a Russian or English severity string to the contract
// enum, defaulting to "weak".
func NormalizeSeverity(s string) string {
	if v, ok := severityMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v
	}
	return "weak"
}

// NormalizeDefectType maps a Russian defect description to the contract enum.
// Exact table lookup first, then stem matching. An unrecognized non-empty
// string is passed through untouched; empty input becomes "scratch".
func NormalizeDefectType(t string) string {
	trimmed := strings.TrimSpace(t)
	lower := strings.ToLower(trimmed)
	if knownDefectTypes[lower] {
		return lower
	}
	for ru, en := range defectTypeMap {
		if strings.Contains(lower, ru) || (lower != "" && strings.Contains(ru, lower)) {
			return en
		}
	}
	switch {
	case strings.Contains(lower, "царапин"):
		return "scratch"
	case strings.Contains(lower, "вмятин"), strings.Contains(lower, "деформац"):
		return "dent"
	case strings.Contains(lower, "скол"):
		return "chip"
	case strings.Contains(lower, "коррози"), strings.Contains(lower, "ржавчин"):
		return "corrosion"
	case strings.Contains(lower, "окраш"), strings.Contains(lower, "перекраш"):
		return "painted"
	case strings.Contains(lower, "замен"):
		return "replaced"
	}
	if trimmed != "" {
		return trimmed
	}
	return "scratch"
}
