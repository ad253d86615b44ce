package loader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/TPGamesNL/Skript/pkg/aliases"
)

// groupRefPattern matches a {group} reference in an alias name.
var groupRefPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Expanded is one concrete alias produced from an AliasDef.
type Expanded struct {
	Name      string
	Plural    string
	Gender    int
	Variation aliases.Variation
}

// GroupLookup finds a variation group by name.
type GroupLookup func(name string) (*aliases.VariationGroup, bool)

// Expand produces every concrete alias of def.
//
// Each {group} reference in the name is replaced by every key of the group in
// turn. The variation of def is merged over the group variation, so the id
// fragment of the group is spliced in at the marker of the id of def and the
// states of def take precedence. An empty plural defaults to the name plus "s".
func Expand(def AliasDef, lookup GroupLookup) ([]Expanded, error) {
	plural := def.Plural
	if plural == "" {
		plural = def.Name + "s"
	}

	partial := []Expanded{{
		Name:      def.Name,
		Plural:    plural,
		Gender:    def.Gender,
		Variation: aliases.NewVariation(def.ID, -1, def.Tags, def.States).WithInsertPoint(aliases.IDMarker),
	}}

	for _, ref := range groupRefs(def.Name) {
		group, ok := lookup(ref)
		if !ok {
			return nil, &UnknownGroupError{Group: ref}
		}
		placeholder := "{" + ref + "}"

		next := make([]Expanded, 0, len(partial)*group.Len())
		for _, p := range partial {
			for key, variation := range group.All() {
				next = append(next, Expanded{
					Name:      fillName(p.Name, placeholder, key),
					Plural:    fillName(p.Plural, placeholder, key),
					Gender:    p.Gender,
					Variation: p.Variation.Merge(variation).WithInsertPoint(aliases.IDMarker),
				})
			}
		}
		partial = next
	}
	return partial, nil
}

// groupRefs returns the distinct group references of name in order.
func groupRefs(name string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, m := range groupRefPattern.FindAllStringSubmatch(name, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			refs = append(refs, m[1])
		}
	}
	return refs
}

// fillName substitutes key for every occurrence of placeholder and
// collapses the whitespace an empty key leaves behind.
func fillName(name, placeholder, key string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(name, placeholder, key)), " ")
}

// UnknownGroupError is returned for a reference to a missing variation group.
type UnknownGroupError struct {
	Group string
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown variation group %q", e.Group)
}
