package aliases

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/TPGamesNL/Skript/pkg/core"
	"github.com/TPGamesNL/Skript/pkg/spi"
)

// damageTagPattern matches the durability shorthand tag.
var damageTagPattern = regexp.MustCompile(`^\{Damage:(\d+)}$`)

// ApplyTags applies tags to stack and returns the resulting mutation flags.
//
// Damage shorthand tags are applied as durability; all other tags are passed
// to the applier in order, so later tags may overwrite earlier keys.
func ApplyTags(applier spi.TagApplier, stack *core.ItemStack, tags []string) (core.ItemFlags, error) {
	var flags core.ItemFlags
	rest := make([]string, 0, len(tags))
	for _, tag := range tags {
		m := damageTagPattern.FindStringSubmatch(tag)
		if m == nil {
			rest = append(rest, tag)
			continue
		}
		damage, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, &TagError{Tag: tag, Err: fmt.Errorf("invalid damage: %w", err)}
		}
		stack.SetDamage(damage)
		flags |= core.FlagChangedDurability
	}

	for _, tag := range rest {
		delta, err := applier.ApplyTag(stack, tag)
		if err != nil {
			return 0, &TagError{Tag: tag, Err: err}
		}
		flags |= delta
	}
	if len(rest) > 0 {
		flags |= core.FlagChangedTags
	}
	return flags, nil
}
