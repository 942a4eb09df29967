// Package duel resolves a one-on-one fight between two duelists.
package duel

import (
	"errors"

	"github.com/cory-johannsen/stoneandsaber/internal/game/effect"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
)

var (
	// ErrSelfChallenge is returned when a duelist challenges itself.
	ErrSelfChallenge = errors.New("duelist cannot challenge itself")
	// ErrNotAlive is returned when either duelist is already dead.
	ErrNotAlive = errors.New("duelist is not alive")
)

// Duelist is anything able to fight a duel. *character.Character satisfies it.
type Duelist interface {
	effect.Target
	String() string
	IsAlive() bool
	Life() int
	Weapon() *weapon.Weapon
	UseWeaponOn(target effect.Target) error
	ProcessTroubles() ([]*effect.Trouble, error)
	Money() int
	EarnMoney(amount int) (int, error)
	LoseMoney(amount int) (int, error)
	WinDuel(amount int)
	LoseDuel(amount int)
}

// State is the duel's position in its state machine.
type State int

const (
	Ongoing State = iota
	Finished
)

func (s State) String() string {
	if s == Finished {
		return "finished"
	}
	return "ongoing"
}

// Strike records one duelist's weapon being used on the other.
type Strike struct {
	Round        int
	Attacker     Duelist
	Defender     Duelist
	Weapon       string
	DefenderLife int // after the strike
}

// Result is the outcome of a finished duel.
type Result struct {
	Winner       Duelist
	Loser        Duelist
	Amount       int // money moved from loser to winner
	Rounds       int
	InitiatorWon bool
	Strikes      []Strike
}
