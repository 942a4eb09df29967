package status

import (
	"fmt"
	"strings"
)

// Element is the elemental tag carried by an effect.
type Element int

const (
	None Element = iota
	Physical
	Fairy
	Fire
	Ice
	Poison
	Thunder
)

var elementNames = map[Element]string{
	None:     "NONE",
	Physical: "PHYSICAL",
	Fairy:    "FAIRY",
	Fire:     "FIRE",
	Ice:      "ICE",
	Poison:   "POISON",
	Thunder:  "THUNDER",
}

// String returns the upper-case element name, e.g. "FIRE".
func (e Element) String() string {
	if n, ok := elementNames[e]; ok {
		return n
	}
	return "UNKNOWN"
}

// ParseElement resolves a case-insensitive element name. The empty string is None.
//
// Postcondition: Returns the matching Element or a non-nil error.
func ParseElement(s string) (Element, error) {
	if s == "" {
		return None, nil
	}
	up := strings.ToUpper(strings.TrimSpace(s))
	for e, n := range elementNames {
		if n == up {
			return e, nil
		}
	}
	return None, fmt.Errorf("status: unknown element %q", s)
}
