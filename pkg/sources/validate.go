package sources

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for errors and collects warnings
// for recoverable issues.
func (c *SourcesConfig) Validate() error {
	if len(c.Taxonomies) == 0 {
		return fmt.Errorf("no taxonomies specified in configuration")
	}

	seen := make(map[string]bool)
	for i := range c.Taxonomies {
		warnings, err := c.Taxonomies[i].Validate(i + 1)
		if err != nil {
			return fmt.Errorf("taxonomy %d: %w", i+1, err)
		}
		c.Warnings = append(c.Warnings, warnings...)

		id := c.Taxonomies[i].ID
		if seen[id] {
			return fmt.Errorf("taxonomy %d: duplicate id '%s'", i+1, id)
		}
		seen[id] = true
	}

	return nil
}

// Validate checks a single taxonomy configuration for data structure
// validity. File system validation (path existence) is deferred to
// runtime (I/O layer). Returns a slice of warnings (non-fatal issues)
// and an error (fatal issues).
func (t *TaxonomyConfig) Validate(index int) ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	if strings.TrimSpace(t.Path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	if _, ok := t.NomCode(); !ok {
		return nil, fmt.Errorf(
			"invalid code '%s': must be 'zoological' or 'botanical'",
			t.Code,
		)
	}

	if t.Title == "" {
		warnings = append(warnings, ValidationWarning{
			TaxonomyID: t.ID,
			Field:      "title",
			Message:    "title is empty",
			Suggestion: fmt.Sprintf("Set 'title' for taxonomy '%s'", t.ID),
		})
		t.Title = t.ID
	}

	return warnings, nil
}
