package world

import (
	"strings"

	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
)

// DefaultSyllables are the building blocks of generated names.
var DefaultSyllables = []string{
	"a", "ab", "bo", "bu", "to", "li", "pa", "mi", "fu",
	"tu", "ri", "so", "zu", "si", "il", "ly", "an",
}

// Names generates capitalised names from syllables.
type Names struct {
	syllables []string
	src       dice.Source
}

// NewNames creates a generator over DefaultSyllables.
func NewNames(src dice.Source) *Names {
	return NewNamesFrom(src, DefaultSyllables)
}

// NewNamesFrom creates a generator over a copy of syllables.
//
// Precondition: src must not be nil; syllables must be non-empty.
func NewNamesFrom(src dice.Source, syllables []string) *Names {
	s := make([]string, len(syllables))
	copy(s, syllables)
	return &Names{syllables: s, src: src}
}

// Generate returns a name of two to four syllables.
func (n *Names) Generate() string {
	return n.GenerateN(dice.Between(n.src, 2, 4))
}

// GenerateN returns a name of exactly count syllables, first letter upper-cased.
//
// Precondition: count >= 1.
func (n *Names) GenerateN(count int) string {
	var sb strings.Builder
	for range count {
		sb.WriteString(n.syllables[n.src.Intn(len(n.syllables))])
	}
	name := sb.String()
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
