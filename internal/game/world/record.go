package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
	"github.com/cory-johannsen/stoneandsaber/internal/game/duel"
)

// RecordKind names something that happened in the world.
type RecordKind int

const (
	RecordCreated RecordKind = iota
	RecordDrink
	RecordDuel
	RecordDeath
	RecordExtort
	RecordRefused
	RecordDonate
	RecordBefriend
)

var recordNames = [...]string{"created", "drink", "duel", "death", "extort", "refused", "donate", "befriend"}

func (k RecordKind) String() string {
	if k < 0 || int(k) >= len(recordNames) {
		return fmt.Sprintf("RecordKind(%d)", int(k))
	}
	return recordNames[k]
}

// Record is one entry of the world's history.
type Record struct {
	Kind       RecordKind
	Generation int
	Actor      *character.Character
	Target     *character.Character // nil for created, drink and death
	Amount     int
	Duel       *duel.Result // set for RecordDuel
}

// Narrator is told about every Record as it happens.
type Narrator interface {
	Narrate(r Record)
}

// NarratorFunc adapts a function to Narrator.
type NarratorFunc func(Record)

func (f NarratorFunc) Narrate(r Record) { f(r) }

// Line is one thing a character says.
type Line struct {
	Speaker *character.Character
	Text    string
}

// Lines returns what the characters involved in r say about it.
func Lines(r Record) []Line {
	switch r.Kind {
	case RecordCreated:
		return []Line{{r.Actor, r.Actor.Greeting()}}
	case RecordDrink:
		return []Line{{r.Actor, r.Actor.Drink()}}
	case RecordDeath:
		return []Line{{r.Actor, fmt.Sprintf("*%s is dead.", r.Actor.Name)}}
	case RecordDuel:
		lines := []Line{{r.Actor, fmt.Sprintf("I challenge you, %s!", r.Target.Name)}}
		if r.Duel == nil {
			return lines
		}
		winner, _ := r.Duel.Winner.(*character.Character)
		loser, _ := r.Duel.Loser.(*character.Character)
		if loser != nil {
			lines = append(lines, Line{loser, defeatLine(loser)})
		}
		if winner != nil {
			lines = append(lines, Line{winner, victoryLine(winner)})
		}
		return lines
	case RecordExtort:
		if r.Actor.Is(character.KindTraitor) {
			return []Line{{r.Actor, fmt.Sprintf("Fool %s, you didn't see me coming! I stole %d blings from you.", r.Target.Name, r.Amount)}}
		}
		return []Line{
			{r.Target, "O rage! O despair! I am as poor as a church mouse!"},
			{r.Actor, fmt.Sprintf("Hehe, I am so villainous. I stole %d blings from %s. I now have %d blings.", r.Amount, r.Target.Name, r.Actor.Money())},
		}
	case RecordRefused:
		return []Line{{r.Actor, fmt.Sprintf("Sigh, cannot extort %s.", r.Target.Name)}}
	case RecordDonate:
		return []Line{
			{r.Actor, fmt.Sprintf("Hey, merchant, here's %d blings.", r.Amount)},
			{r.Target, fmt.Sprintf("Oh, thank you for this donation, your Highness. Now, I have %d blings.", r.Target.Money())},
		}
	case RecordBefriend:
		b, _ := r.Actor.Betrayal()
		return []Line{
			{r.Actor, fmt.Sprintf("%s, you seem very friendly. Here you are, take these %d blings.", r.Target.Name, r.Amount)},
			{r.Target, "Thank you! You're truly generous."},
			{r.Actor, fmt.Sprintf("Thanks to this gullible fool my betrayal level is now %.1f.", b)},
		}
	}
	return nil
}

func victoryLine(c *character.Character) string {
	if c.Is(character.KindYakuza) {
		return "Huhu, you fool! Did you really think you could defeat me?"
	}
	return "Victory is mine!"
}

func defeatLine(c *character.Character) string {
	if c.Is(character.KindYakuza) {
		return "Nooo, how on earth have I lost?"
	}
	return "Argg, I didn't keep up..."
}

// LogNarrator logs every line spoken at info level.
type LogNarrator struct {
	logger *zap.Logger
}

// NewLogNarrator creates a LogNarrator.
//
// Precondition: logger must not be nil.
func NewLogNarrator(logger *zap.Logger) *LogNarrator {
	return &LogNarrator{logger: logger}
}

func (n *LogNarrator) Narrate(r Record) {
	for _, l := range Lines(r) {
		n.logger.Info(l.Text,
			zap.Int("generation", r.Generation),
			zap.Stringer("event", r.Kind),
			zap.Stringer("speaker", l.Speaker),
		)
	}
}
