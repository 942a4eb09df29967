package character

// Lord is the master samurais and traitors are sworn to.
type Lord struct {
	Name    string
	vassals []*Character
}

// NewLord creates a lord with no vassals.
func NewLord(name string) *Lord {
	return &Lord{Name: name}
}

func (l *Lord) engage(c *Character) {
	l.vassals = append(l.vassals, c)
}

// Vassals returns every character ever sworn to the lord, dead or alive.
func (l *Lord) Vassals() []*Character {
	out := make([]*Character, len(l.vassals))
	copy(out, l.vassals)
	return out
}

// Clan is the family yakuzas belong to.
type Clan struct {
	Name    string
	members []*Character
}

// NewClan creates a clan with no members.
func NewClan(name string) *Clan {
	return &Clan{Name: name}
}

func (c *Clan) engage(member *Character) {
	c.members = append(c.members, member)
}

// Members returns every character ever enrolled in the clan, dead or alive.
func (c *Clan) Members() []*Character {
	out := make([]*Character, len(c.members))
	copy(out, c.members)
	return out
}
