package spell

import (
	"strings"

	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Element is the closed set of tags a spell can carry
type Element string

// Elements lists every valid element in declaration order
var Elements = []Element{ElementFire, ElementIce, ElementLightning, ElementEarth, ElementWind}

const (
	ElementNone      Element = ""
	ElementFire      Element = "Fire"
	ElementIce       Element = "Ice"
	ElementLightning Element = "Lightning"
	ElementEarth     Element = "Earth"
	ElementWind      Element = "Wind"
)

func (e Element) String() string {
	return string(e)
}

// Valid reports whether e is one of the five known elements
func (e Element) Valid() bool {
	for _, known := range Elements {
		if e == known {
			return true
		}
	}
	return false
}

// ParseElement maps a case-insensitive name to its Element
func ParseElement(name string) (Element, error) {
	trimmed := strings.TrimSpace(name)
	for _, known := range Elements {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return ElementNone, dnderr.InvalidArgumentf("unknown element '%s'", name).
		WithMeta("element", name)
}
