package llm

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Models regularly wrap their JSON in markdown fences or chatty prefixes.
// These helpers cut out the first balanced object/array and unmarshal it.

// ExtractJSONObject finds the first balanced {...} in text and unmarshals it
// into v.
func ExtractJSONObject(text string, v any) error {
	s := stripFences(text)
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return fmt.Errorf("no JSON object in response")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return json.Unmarshal([]byte(s[start:i+1]), v)
			}
		}
	}
	return fmt.Errorf("unbalanced braces in response")
}

// ExtractJSONArray finds the first balanced [...] in text and unmarshals it
// into v.
func ExtractJSONArray(text string, v any) error {
	s := stripFences(text)
	start := strings.IndexByte(s, '[')
	if start == -1 {
		return fmt.Errorf("no JSON array in response")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return json.Unmarshal([]byte(s[start:i+1]), v)
			}
		}
	}
	return fmt.Errorf("unbalanced brackets in response")
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.Contains(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func encodeBase64(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}
