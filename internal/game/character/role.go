package character

import "fmt"

// Kind identifies a role family.
type Kind int

const (
	KindMerchant Kind = iota
	KindRonin
	KindSamurai
	KindTraitor
	KindYakuza
)

var kindNames = [...]string{"Merchant", "Ronin", "Samurai", "Traitor", "Yakuza"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Is reports whether k belongs to family other: a traitor is a samurai, and a
// samurai is a ronin.
func (k Kind) Is(other Kind) bool {
	if k == other {
		return true
	}
	switch k {
	case KindTraitor:
		return other == KindSamurai || other == KindRonin
	case KindSamurai:
		return other == KindRonin
	}
	return false
}

// Role is the strategy value that gives a Character its kind-specific behaviour.
// The set of roles is closed: Merchant, Ronin, Samurai, Traitor and Yakuza.
type Role interface {
	Kind() Kind
	beverage() string
	greeting(c *Character) string
	winDuel(amount int)
	loseDuel(amount int)
}

// Merchant trades and is extorted. Merchants carry no duel counters.
type Merchant struct{}

func (*Merchant) Kind() Kind       { return KindMerchant }
func (*Merchant) beverage() string { return "tea" }
func (*Merchant) winDuel(int)      {}
func (*Merchant) loseDuel(int)     {}
func (*Merchant) greeting(c *Character) string {
	return fmt.Sprintf("Hello! My name is %s and I love drinking %s.", c.Name, c.Beverage)
}

// Ronin is a masterless swordsman. Honor starts at 1, rises with every won duel
// and every donation, and falls with every lost duel.
type Ronin struct {
	honor int
}

func newRonin() Ronin { return Ronin{honor: 1} }

func (*Ronin) Kind() Kind       { return KindRonin }
func (*Ronin) beverage() string { return "sake" }
func (r *Ronin) Honor() int     { return r.honor }
func (r *Ronin) winDuel(int)    { r.honor++ }
func (r *Ronin) loseDuel(int)   { r.honor-- }
func (r *Ronin) donated()       { r.honor++ }
func (*Ronin) greeting(c *Character) string {
	return fmt.Sprintf("%s. Ronin. %d sous.", c.Name, c.Money())
}

// Samurai is a ronin sworn to a Lord.
type Samurai struct {
	Ronin
	lord *Lord
}

func (*Samurai) Kind() Kind    { return KindSamurai }
func (s *Samurai) Lord() *Lord { return s.lord }
func (s *Samurai) greeting(c *Character) string {
	return fmt.Sprintf("My name is %s. I am a loyal samurai serving Lord %s.", c.Name, s.lord.Name)
}

// MaxBetrayal is the betrayal level at which a traitor stops extorting.
const MaxBetrayal = 3.0

// Traitor is a samurai who extorts merchants behind the Lord's back. Each
// extortion raises the betrayal level; gifts to gullible humans lower it.
type Traitor struct {
	Samurai
	betrayal float64
}

func (*Traitor) Kind() Kind                  { return KindTraitor }
func (*Traitor) beverage() string            { return "black tea" }
func (t *Traitor) Betrayal() float64         { return t.betrayal }
func (t *Traitor) canExtort(*Character) bool { return t.betrayal < MaxBetrayal }

func (t *Traitor) extort(c, victim *Character) int {
	if !t.canExtort(victim) {
		return 0
	}
	amount := victim.LoseEverything()
	c.money += amount
	t.betrayal++
	return amount
}

// Yakuza belongs to a Clan. Prestige starts at 0 and follows duel results and
// extortions.
type Yakuza struct {
	prestige int
	clan     *Clan
}

func (*Yakuza) Kind() Kind       { return KindYakuza }
func (*Yakuza) beverage() string { return "rum" }
func (y *Yakuza) Prestige() int  { return y.prestige }
func (y *Yakuza) Clan() *Clan    { return y.clan }
func (y *Yakuza) winDuel(int)    { y.prestige++ }
func (y *Yakuza) loseDuel(int)   { y.prestige-- }
func (y *Yakuza) greeting(c *Character) string {
	plural := ""
	if c.Money() > 1 {
		plural = "s"
	}
	return fmt.Sprintf("I'm %s, a yakuza of the %s clan! I have %d bling%s.", c.Name, y.clan.Name, c.Money(), plural)
}

func (*Yakuza) canExtort(victim *Character) bool { return victim.Money() > 0 }

func (y *Yakuza) extort(c, victim *Character) int {
	amount := victim.LoseEverything()
	c.money += amount
	y.prestige++
	return amount
}
