package character

import "fmt"

type honorable interface{ Honor() int }
type prestigious interface{ Prestige() int }
type betrayer interface{ Betrayal() float64 }
type donor interface{ donated() }

type extorter interface {
	canExtort(victim *Character) bool
	extort(c, victim *Character) int
}

// Honor returns the character's honor and whether its role tracks honor.
func (c *Character) Honor() (int, bool) {
	if h, ok := c.role.(honorable); ok {
		return h.Honor(), true
	}
	return 0, false
}

// Prestige returns the character's prestige and whether its role tracks prestige.
func (c *Character) Prestige() (int, bool) {
	if p, ok := c.role.(prestigious); ok {
		return p.Prestige(), true
	}
	return 0, false
}

// Betrayal returns the character's betrayal level and whether it is a traitor.
func (c *Character) Betrayal() (float64, bool) {
	if b, ok := c.role.(betrayer); ok {
		return b.Betrayal(), true
	}
	return 0, false
}

// CanExtort reports whether the character is able to extort victim right now.
// Yakuzas need a victim with money; traitors need a betrayal level below MaxBetrayal.
func (c *Character) CanExtort(victim *Character) bool {
	x, ok := c.role.(extorter)
	return ok && victim.Is(KindMerchant) && x.canExtort(victim)
}

// Extort takes the victim's whole purse and returns the amount taken.
// A traitor that can no longer extort takes nothing.
//
// Precondition: victim must be a merchant.
// Postcondition: on success the victim's money is 0 or untouched (traitor at
// MaxBetrayal) and the extorter holds what was taken.
func (c *Character) Extort(victim *Character) (int, error) {
	x, ok := c.role.(extorter)
	if !ok {
		return 0, fmt.Errorf("%s cannot extort: %w", c, ErrIncapable)
	}
	if !victim.Is(KindMerchant) {
		return 0, fmt.Errorf("%s extorting %s: %w", c, victim, ErrInvalidTarget)
	}
	return x.extort(c, victim), nil
}

// Donate gives amount to a merchant and raises the donor's honor.
//
// Precondition: the donor is a ronin, samurai or traitor; merchant is a merchant;
// 0 <= amount <= Money().
// Postcondition: on error neither purse changed; otherwise amount moved from c to merchant.
func (c *Character) Donate(merchant *Character, amount int) (int, error) {
	d, ok := c.role.(donor)
	if !ok {
		return 0, fmt.Errorf("%s cannot donate: %w", c, ErrIncapable)
	}
	if !merchant.Is(KindMerchant) {
		return 0, fmt.Errorf("%s donating to %s: %w", c, merchant, ErrInvalidTarget)
	}
	if amount < 0 || amount > c.money {
		return 0, fmt.Errorf("%s donating %d with %d: %w", c, amount, c.money, ErrInvalidAmount)
	}
	c.money -= amount
	merchant.money += amount
	d.donated()
	return amount, nil
}

// MakeFriend gives donation to gullible. Every 10 given lowers the traitor's
// betrayal level by 1, never below 0.
//
// Precondition: c is a traitor; 0 <= donation <= Money().
// Postcondition: on error neither purse changed.
func (c *Character) MakeFriend(gullible *Character, donation int) error {
	t, ok := c.role.(*Traitor)
	if !ok {
		return fmt.Errorf("%s cannot befriend: %w", c, ErrIncapable)
	}
	if donation < 0 || donation > c.money {
		return fmt.Errorf("%s befriending with %d while having %d: %w", c, donation, c.money, ErrInvalidAmount)
	}
	c.money -= donation
	gullible.money += donation
	t.betrayal = max(t.betrayal-float64(donation)/10, 0)
	return nil
}
