package character

import (
	"fmt"

	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
)

// Profile carries the role-independent attributes of a new character.
type Profile struct {
	Name  string
	Money int
	// Beverage defaults to the role's favourite drink when empty.
	Beverage string
	// Weapon defaults to weapon.Unarmed when nil.
	Weapon *weapon.Weapon
	// Status defaults to status.Default when nil.
	Status *status.Status
}

// NewMerchant creates a merchant. Any weapon in p is kept but merchants never duel.
//
// Precondition: p.Name non-empty; p.Money >= 0.
// Postcondition: Returns a Merchant character or a non-nil error.
func NewMerchant(p Profile) (*Character, error) {
	return newCharacter(p, &Merchant{})
}

// NewRonin creates a masterless ronin with honor 1.
//
// Precondition: p.Name non-empty; p.Money >= 0.
// Postcondition: Returns a Ronin character or a non-nil error.
func NewRonin(p Profile) (*Character, error) {
	r := newRonin()
	return newCharacter(p, &r)
}

// NewSamurai creates a samurai and swears it to lord.
//
// Precondition: lord must not be nil.
// Postcondition: Returns a Samurai character listed among lord's vassals, or an
// error wrapping ErrMissingRelation when lord is nil.
func NewSamurai(p Profile, lord *Lord) (*Character, error) {
	if lord == nil {
		return nil, fmt.Errorf("samurai %q: a samurai without a lord is a ronin: %w", p.Name, ErrMissingRelation)
	}
	c, err := newCharacter(p, &Samurai{Ronin: newRonin(), lord: lord})
	if err != nil {
		return nil, err
	}
	lord.engage(c)
	return c, nil
}

// NewTraitor creates a traitor sworn to lord. Traitors always carry a dagger.
//
// Precondition: lord must not be nil; p.Weapon must be a weapon.Dagger.
// Postcondition: Returns a Traitor character listed among lord's vassals, or a
// non-nil error.
func NewTraitor(p Profile, lord *Lord) (*Character, error) {
	if lord == nil {
		return nil, fmt.Errorf("traitor %q: %w", p.Name, ErrMissingRelation)
	}
	if p.Weapon == nil || p.Weapon.Name() != weapon.Dagger {
		return nil, fmt.Errorf("traitor %q must carry a %s", p.Name, weapon.Dagger)
	}
	c, err := newCharacter(p, &Traitor{Samurai: Samurai{Ronin: newRonin(), lord: lord}})
	if err != nil {
		return nil, err
	}
	lord.engage(c)
	return c, nil
}

// NewYakuza creates a yakuza and enrolls it in clan.
//
// Precondition: clan must not be nil.
// Postcondition: Returns a Yakuza character listed among clan's members, or an
// error wrapping ErrMissingRelation when clan is nil.
func NewYakuza(p Profile, clan *Clan) (*Character, error) {
	if clan == nil {
		return nil, fmt.Errorf("yakuza %q: clan must be specified: %w", p.Name, ErrMissingRelation)
	}
	c, err := newCharacter(p, &Yakuza{clan: clan})
	if err != nil {
		return nil, err
	}
	clan.engage(c)
	return c, nil
}
