// Package catalog serves the static brand;model reference table backing the
// cascading brand → model selectors. The table is optional: when the file is
// absent the catalog is simply empty and the UI falls back to free-text entry.
package catalog

import (
	"bufio"
	"log"
	"os"
	"sort"
	"strings"
)

type Catalog struct {
	brands []string            // sorted unique brands
	models map[string][]string // lowercased brand -> models in file order
}

// Load reads a semicolon-delimited "brand;model" file. Any read error yields
// an empty catalog, never a failure.
func Load(path string) *Catalog {
	c := &Catalog{models: make(map[string][]string)}
	if path == "" {
		return c
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("catalog: %s not available, falling back to free-text entry: %v", path, err)
		return c
	}
	defer f.Close()

	seenBrand := make(map[string]bool)
	seenPair := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ";", 2)
		if len(parts) != 2 {
			continue
		}
		brand := strings.TrimSpace(parts[0])
		model := strings.TrimSpace(parts[1])
		if brand == "" || model == "" {
			continue
		}
		key := strings.ToLower(brand)
		if !seenBrand[key] {
			seenBrand[key] = true
			c.brands = append(c.brands, brand)
		}
		pair := key + ";" + strings.ToLower(model)
		if !seenPair[pair] {
			seenPair[pair] = true
			c.models[key] = append(c.models[key], model)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("catalog: error reading %s: %v", path, err)
	}
	sort.Strings(c.brands)
	log.Printf("catalog: loaded %d brands from %s", len(c.brands), path)
	return c
}

func (c *Catalog) Empty() bool {
	return len(c.brands) == 0
}

func (c *Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// Models returns the models for a brand, matched case-insensitively, in the
// order they appear in the table.
func (c *Catalog) Models(brand string) []string {
	models := c.models[strings.ToLower(strings.TrimSpace(brand))]
	out := make([]string, len(models))
	copy(out, models)
	return out
}
