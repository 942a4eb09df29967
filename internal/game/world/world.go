package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
	"github.com/cory-johannsen/stoneandsaber/internal/game/duel"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
)

// Options carries the collaborators a world is built from.
type Options struct {
	// Roller supplies every random draw the world makes.
	Roller *dice.Roller
	// Catalog arms samurais, yakuzas and traitors.
	Catalog *weapon.Catalog
	// Money is rolled for each character's starting purse.
	Money dice.Expression
	// Narrators are told about every Record.
	Narrators []Narrator
	Logger    *zap.Logger
}

// World is one lord, one clan and the people living under them.
// A World is driven from a single goroutine.
type World struct {
	Lord    *character.Lord
	Clan    *character.Clan
	People  *Population
	Factory *Factory

	src        dice.Source
	resolver   *duel.Resolver
	narrators  []Narrator
	logger     *zap.Logger
	generation int
}

// New creates an empty world with a freshly named lord and clan. Every
// character the factory creates from now on joins the population.
//
// Precondition: opts.Roller, opts.Catalog and opts.Logger must not be nil.
func New(opts Options) *World {
	f := NewFactory(opts.Roller, opts.Catalog, opts.Money, opts.Logger)
	w := &World{
		People:    NewPopulation(),
		Factory:   f,
		src:       opts.Roller.Source(),
		resolver:  duel.NewResolver(opts.Logger),
		narrators: opts.Narrators,
		logger:    opts.Logger,
	}
	w.Lord = character.NewLord(f.Name())
	w.Clan = character.NewClan(f.Name())
	f.OnCreate(func(c *character.Character) {
		if err := w.People.Add(c); err != nil {
			w.logger.Error("adding created character", zap.Error(err))
			return
		}
		w.narrate(Record{Kind: RecordCreated, Actor: c})
	})
	return w
}

// Randomized creates a world populated according to seed: samurais, then
// yakuzas, then merchants, then traitors.
//
// Postcondition: People.Len() == seed.Total(), or a non-nil error.
func Randomized(seed Seed, opts Options) (*World, error) {
	w := New(opts)
	steps := []struct {
		n      int
		create func() (*character.Character, error)
	}{
		{seed.Samurais, func() (*character.Character, error) { return w.Factory.NewSamurai(w.Lord) }},
		{seed.Yakuzas, func() (*character.Character, error) { return w.Factory.NewYakuza(w.Clan) }},
		{seed.Merchants, w.Factory.NewMerchant},
		{seed.Traitors, func() (*character.Character, error) { return w.Factory.NewTraitor(w.Lord) }},
	}
	for _, s := range steps {
		for range s.n {
			if _, err := s.create(); err != nil {
				return nil, fmt.Errorf("populating world: %w", err)
			}
		}
	}
	w.logger.Info("world created",
		zap.String("lord", w.Lord.Name),
		zap.String("clan", w.Clan.Name),
		zap.Int("population", w.People.Len()),
	)
	return w, nil
}

// Generation returns the generation currently being played; 0 before Fate runs.
func (w *World) Generation() int { return w.generation }

// Source returns the world's randomness source.
func (w *World) Source() dice.Source { return w.src }

func (w *World) narrate(r Record) {
	r.Generation = w.generation
	for _, n := range w.narrators {
		n.Narrate(r)
	}
}

// Drink makes a random living character drink.
func (w *World) Drink() error {
	c, ok := w.People.Any(w.src, Anyone)
	if !ok {
		return nil
	}
	w.narrate(Record{Kind: RecordDrink, Actor: c})
	return nil
}

// Challenge pits a random living character of kind challenger against a
// random living character of kind defender. Nothing happens when either side
// has nobody left.
func (w *World) Challenge(challenger, defender character.Kind) error {
	a, ok := w.People.Any(w.src, OfKind(challenger))
	if !ok {
		return nil
	}
	b, ok := w.People.Any(w.src, OfKind(defender), Except(a))
	if !ok {
		return nil
	}
	res, err := w.resolver.Challenge(a, b)
	if err != nil {
		return err
	}
	w.narrate(Record{Kind: RecordDuel, Actor: a, Target: b, Amount: res.Amount, Duel: &res})
	return nil
}

// Extort has a random living character of kind extorter rob a random living
// merchant. A character that cannot extort its victim says so instead.
func (w *World) Extort(extorter character.Kind) error {
	x, ok := w.People.Any(w.src, OfKind(extorter))
	if !ok {
		return nil
	}
	victim, ok := w.People.Any(w.src, OfKind(character.KindMerchant))
	if !ok {
		return nil
	}
	if !x.CanExtort(victim) {
		w.narrate(Record{Kind: RecordRefused, Actor: x, Target: victim})
		return nil
	}
	amount, err := x.Extort(victim)
	if err != nil {
		return err
	}
	w.narrate(Record{Kind: RecordExtort, Actor: x, Target: victim, Amount: amount})
	return nil
}

// Donate has a random living ronin, samurai or traitor give a random part of
// its purse to a random living merchant.
func (w *World) Donate() error {
	d, ok := w.People.Any(w.src, OfKind(character.KindRonin))
	if !ok {
		return nil
	}
	m, ok := w.People.Any(w.src, OfKind(character.KindMerchant))
	if !ok {
		return nil
	}
	amount, err := d.Donate(m, w.src.Intn(d.Money()+1))
	if err != nil {
		return err
	}
	w.narrate(Record{Kind: RecordDonate, Actor: d, Target: m, Amount: amount})
	return nil
}

// Befriend has a random living traitor give a random part of its purse to
// another random living character, easing its betrayal level.
func (w *World) Befriend() error {
	t, ok := w.People.Any(w.src, OfKind(character.KindTraitor))
	if !ok {
		return nil
	}
	g, ok := w.People.Any(w.src, Except(t))
	if !ok {
		return nil
	}
	amount := w.src.Intn(t.Money() + 1)
	if err := t.MakeFriend(g, amount); err != nil {
		return err
	}
	w.narrate(Record{Kind: RecordBefriend, Actor: t, Target: g, Amount: amount})
	return nil
}

// Live ticks everybody's troubles and buries the dead.
func (w *World) Live() error {
	dead, err := w.People.Live()
	for _, c := range dead {
		w.narrate(Record{Kind: RecordDeath, Actor: c})
	}
	return err
}

// String returns "Lord=[<lord>] Clan=[<clan>]".
func (w *World) String() string {
	return fmt.Sprintf("Lord=[%s] Clan=[%s]", w.Lord.Name, w.Clan.Name)
}
