package level

import (
	"embed"
	"fmt"

	"github.com/Indeximal/magnate/game/engine"
)

//go:embed levels/*.json
var builtinFS embed.FS

// NumSlots is the number of level slots, addressed 0 through 9.
const NumSlots = 10

// DefaultPlaySlot is the slot a fresh session starts on. Slot 0 is reserved
// for the empty board.
const DefaultPlaySlot = 1

// builtins holds the embedded campaign levels by slot. A nil entry means the
// slot is free for saved levels.
var builtins [NumSlots]*engine.Level

func init() {
	for slot := 0; slot < NumSlots; slot++ {
		data, err := builtinFS.ReadFile(fmt.Sprintf("levels/slot%d.json", slot))
		if err != nil {
			continue
		}
		lv, err := DecodeLevel(data)
		if err != nil {
			panic(fmt.Sprintf("embedded level slot %d is broken: %v", slot, err))
		}
		builtins[slot] = lv
	}
}

// BuiltIn returns the embedded level for a slot, or nil if the slot has none.
func BuiltIn(slot int) *engine.Level {
	if slot < 0 || slot >= NumSlots {
		return nil
	}
	return builtins[slot]
}
