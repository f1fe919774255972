// Package svg prepares exported SVG illustrations for palette colouring.
//
// Illustration tools export numbered layer groups with escaped identifiers:
// group "1" becomes id="_x31_", group "2" becomes id="_x32_", and so on.
// Annotate tags the first six of these with fill-1 .. fill-6 classes so a
// stylesheet can colour each group from a palette slot. The document is
// treated as text; nothing is parsed and all other bytes pass through.
package svg

import (
	"fmt"
	"strings"
)

// SlotCount is the number of recognised group identifiers.
const SlotCount = 6

// IDAttr returns the identifier attribute for slot (1-based), e.g. id="_x31_".
func IDAttr(slot int) string {
	return fmt.Sprintf(`id="_x3%d_"`, slot)
}

// ClassName returns the styling class for slot (1-based), e.g. fill-1.
func ClassName(slot int) string {
	return fmt.Sprintf("fill-%d", slot)
}

func annotatedAttr(slot int) string {
	return fmt.Sprintf(`%s class="%s"`, IDAttr(slot), ClassName(slot))
}

// Annotate adds a class="fill-N" attribute after the first id="_x3N_" for each
// slot N in 1..6. Slots already annotated, and slots with no matching
// identifier, are left untouched. Annotate is idempotent.
func Annotate(raw string) string {
	out := raw
	for slot := 1; slot <= SlotCount; slot++ {
		id := IDAttr(slot)
		if !strings.Contains(out, id) {
			continue
		}
		tagged := annotatedAttr(slot)
		if strings.Contains(out, tagged) {
			continue
		}
		out = strings.Replace(out, id, tagged, 1)
	}
	return out
}

// Slots returns the 1-based slots whose identifier appears in raw, in order.
func Slots(raw string) []int {
	var found []int
	for slot := 1; slot <= SlotCount; slot++ {
		if strings.Contains(raw, IDAttr(slot)) {
			found = append(found, slot)
		}
	}
	return found
}

// Missing returns the 1-based slots whose identifier does not appear in raw.
func Missing(raw string) []int {
	var missing []int
	for slot := 1; slot <= SlotCount; slot++ {
		if !strings.Contains(raw, IDAttr(slot)) {
			missing = append(missing, slot)
		}
	}
	return missing
}
