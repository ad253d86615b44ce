package core

// AliasName is the name an alias is registered under.
// Both forms key into the alias table and resolve to the same group.
type AliasName struct {
	Singular string
	Plural   string
	Gender   int
}

// NewAliasName creates an alias name. An empty plural falls back to the singular.
func NewAliasName(singular, plural string, gender int) AliasName {
	if plural == "" {
		plural = singular
	}
	return AliasName{Singular: singular, Plural: plural, Gender: gender}
}

// MaterialName is the display name stored for a canonical item.
type MaterialName struct {
	Material Material
	Singular string
	Plural   string
	Gender   int
}

// Form returns the plural or singular form of the name.
func (n MaterialName) Form(plural bool) string {
	if plural {
		return n.Plural
	}
	return n.Singular
}

// String returns the singular form.
func (n MaterialName) String() string {
	return n.Singular
}

// EntityData is an opaque descriptor of an entity related to an item,
// such as the creature a spawn egg produces.
type EntityData struct {
	Type string // namespaced entity id
	Name string // name the entity was resolved from
}

// String returns the entity type.
func (e *EntityData) String() string {
	if e == nil {
		return ""
	}
	return e.Type
}
