package aliases

import (
	"fmt"

	"github.com/TPGamesNL/Skript/pkg/core"
)

// InvalidMinecraftIDError is returned when the platform does not recognize
// the id of an alias definition.
type InvalidMinecraftIDError struct {
	Name core.AliasName
	ID   string
}

func (e *InvalidMinecraftIDError) Error() string {
	return fmt.Sprintf("invalid minecraft id %q for alias %q", e.ID, e.Name.Singular)
}

// TagError is returned when a tag payload cannot be applied.
type TagError struct {
	Tag string
	Err error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid tag %s: %v", e.Tag, e.Err)
}

func (e *TagError) Unwrap() error {
	return e.Err
}
