package arena

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grimoire/internal/ui/theme"
)

// MonsterVariant selects which spirit art to display.
type MonsterVariant int

const (
	MonsterLurking  MonsterVariant = iota // Floating, waiting
	MonsterAlert                          // Shaking after a wrong answer
	MonsterBanished                       // Dissolving
	MonsterCleared                        // Tombstone after the last spirit
)

const monsterLurking = `  .-~~~-.
 /  o o  \
|    ^    |
 \ '~~~' /
  ~^~^~^~`

const monsterAlert = ` .-~~~-.  !
/  > <  \
|   ==   |
 \ '~~' /
 ~^~^~^~`

const monsterBanished = `  .  *  .
 *  . .  *
  .  *  .
 *   .   *
   . * .`

const tombstone = `   _____
  /     \
 |  RIP  |
 |       |
 |_______|`

// RenderMonster returns the spirit art for the given variant.
func RenderMonster(variant MonsterVariant) string {
	art := monsterLurking
	fg := theme.Primary

	switch variant {
	case MonsterAlert:
		art = monsterAlert
		fg = theme.Error
	case MonsterBanished:
		art = monsterBanished
		fg = theme.Accent
	case MonsterCleared:
		art = tombstone
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
