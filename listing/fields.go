// Package listing holds the field reconciliation and readiness rules for one
// ad draft: which pricing fields are still missing, whether the listing is
// ready to publish, and which fields carry AI-filled / user-edited badges.
// Everything here is a pure function of the current form state; the server
// keeps no draft state between calls.
package listing

import (
	"encoding/json"
	"sort"
)

// FieldSet is the append-only set of dotted field paths the user has
// explicitly edited during one session. Paths are only ever added; the set is
// discarded wholesale when the user returns to upload.
type FieldSet map[string]struct{}

func NewFieldSet(paths ...string) FieldSet {
	s := make(FieldSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

func (s FieldSet) Add(path string) {
	if path == "" {
		return
	}
	s[path] = struct{}{}
}

func (s FieldSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Union merges other into s, returning s for chaining.
func (s FieldSet) Union(other FieldSet) FieldSet {
	for p := range other {
		s[p] = struct{}{}
	}
	return s
}

func (s FieldSet) Paths() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s FieldSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Paths())
}

func (s *FieldSet) UnmarshalJSON(data []byte) error {
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return err
	}
	out := make(FieldSet, len(paths))
	for _, p := range paths {
		out.Add(p)
	}
	*s = out
	return nil
}
