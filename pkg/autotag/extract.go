package autotag

import (
	"sort"
	"strings"
)

// WineTextInput holds the free-text fields of a wine used for tagging.
// Missing fields are empty strings.
type WineTextInput struct {
	Name        string
	Type        string
	FlavorNotes string
	Description string
}

// ExtractFlavorTags returns the sorted set of categories whose keywords occur
// as whole words or phrases in flavorNotes or description.
func ExtractFlavorTags(flavorNotes, description string) []string {
	corpus := strings.ToLower(flavorNotes + " " + description)

	found := make(map[string]struct{})
	for _, group := range [][]compiledCategory{compiledPrimary, compiledContextual} {
		for _, cat := range group {
			if _, ok := found[cat.name]; ok {
				continue
			}
			for _, re := range cat.patterns {
				if re.MatchString(corpus) {
					found[cat.name] = struct{}{}
					break
				}
			}
		}
	}
	return sortedKeys(found)
}

// AutoTagWine combines keyword extraction over all text fields with the
// defaults implied by the wine type. Name and type are appended to the
// description channel as supplementary signal.
func AutoTagWine(in WineTextInput) []string {
	extra := strings.ToLower(in.Name + " " + in.Type)
	tags := make(map[string]struct{})
	for _, t := range ExtractFlavorTags(in.FlavorNotes, in.Description+" "+extra) {
		tags[t] = struct{}{}
	}
	for _, t := range TypeDefaults(in.Type) {
		tags[t] = struct{}{}
	}
	return sortedKeys(tags)
}

// TypeDefaults returns the default tags for a wine type. Triggers are checked
// in a fixed order and only the first match applies, so "Red Sparkling" gets
// the red defaults.
func TypeDefaults(wineType string) []string {
	lower := strings.ToLower(wineType)
	for _, d := range typeDefaults {
		for _, trigger := range d.Triggers {
			if strings.Contains(lower, trigger) {
				return append([]string(nil), d.Tags...)
			}
		}
	}
	return []string{}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
