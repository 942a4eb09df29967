package world

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
)

// Chronicle tallies what happened in one world. It is a Narrator.
type Chronicle struct {
	Generations int
	Created     int
	Drinks      int
	Duels       int
	Deaths      int
	Extortions  int
	Extorted    int // total money taken by extortion
	Refusals    int
	Donations   int
	Donated     int // total money donated
	Friendships int
	Survivors   map[character.Kind]int
}

// NewChronicle creates an empty Chronicle.
func NewChronicle() *Chronicle {
	return &Chronicle{Survivors: make(map[character.Kind]int)}
}

// Narrate counts r.
func (c *Chronicle) Narrate(r Record) {
	c.Generations = max(c.Generations, r.Generation)
	switch r.Kind {
	case RecordCreated:
		c.Created++
	case RecordDrink:
		c.Drinks++
	case RecordDuel:
		c.Duels++
	case RecordDeath:
		c.Deaths++
	case RecordExtort:
		c.Extortions++
		c.Extorted += r.Amount
	case RecordRefused:
		c.Refusals++
	case RecordDonate:
		c.Donations++
		c.Donated += r.Amount
	case RecordBefriend:
		c.Friendships++
	}
}

// Close records the survivors of w and the number of generations played.
func (c *Chronicle) Close(w *World) {
	c.Generations = max(c.Generations, w.Generation())
	clear(c.Survivors)
	for _, p := range w.People.Alive() {
		c.Survivors[p.Kind()]++
	}
}

// String renders a multi-line summary.
func (c *Chronicle) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "generations: %d\n", c.Generations)
	fmt.Fprintf(&sb, "born: %d  deaths: %d  drinks: %d\n", c.Created, c.Deaths, c.Drinks)
	fmt.Fprintf(&sb, "duels: %d\n", c.Duels)
	fmt.Fprintf(&sb, "extortions: %d (%d blings, %d refused)\n", c.Extortions, c.Extorted, c.Refusals)
	fmt.Fprintf(&sb, "donations: %d (%d blings)  friendships: %d\n", c.Donations, c.Donated, c.Friendships)
	sb.WriteString("survivors:")
	for k := character.KindMerchant; k <= character.KindYakuza; k++ {
		fmt.Fprintf(&sb, " %s=%d", k, c.Survivors[k])
	}
	sb.WriteString("\n")
	return sb.String()
}
