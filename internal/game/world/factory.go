package world

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
)

// Factory creates named, armed characters with rolled starting money.
type Factory struct {
	names   *Names
	catalog *weapon.Catalog
	roller  *dice.Roller
	money   dice.Expression
	logger  *zap.Logger

	mu          sync.Mutex
	subscribers []func(*character.Character)
}

// NewFactory creates a Factory. Starting money is rolled from money for every character.
//
// Precondition: roller, catalog and logger must not be nil; money.Min() >= 0.
func NewFactory(roller *dice.Roller, catalog *weapon.Catalog, money dice.Expression, logger *zap.Logger) *Factory {
	return &Factory{
		names:   NewNames(roller.Source()),
		catalog: catalog,
		roller:  roller,
		money:   money,
		logger:  logger,
	}
}

// OnCreate registers fn to be called with every character the factory creates.
// Callbacks run in registration order on the creating goroutine.
func (f *Factory) OnCreate(fn func(*character.Character)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, fn)
}

// Name generates a fresh name, for characters and affiliations alike.
func (f *Factory) Name() string { return f.names.Generate() }

// NewMerchant creates an unarmed merchant.
func (f *Factory) NewMerchant() (*character.Character, error) {
	return f.publish(character.NewMerchant(f.profile(nil)))
}

// NewSamurai creates a samurai sworn to lord, armed from the catalog's armory.
func (f *Factory) NewSamurai(lord *character.Lord) (*character.Character, error) {
	return f.publish(character.NewSamurai(f.profile(f.catalog.Any(f.roller.Source())), lord))
}

// NewTraitor creates a traitor sworn to lord, armed with a dagger.
func (f *Factory) NewTraitor(lord *character.Lord) (*character.Character, error) {
	dagger, err := f.catalog.Create(weapon.Dagger)
	if err != nil {
		return nil, err
	}
	return f.publish(character.NewTraitor(f.profile(dagger), lord))
}

// NewYakuza creates a yakuza of clan, armed from the catalog's armory.
func (f *Factory) NewYakuza(clan *character.Clan) (*character.Character, error) {
	return f.publish(character.NewYakuza(f.profile(f.catalog.Any(f.roller.Source())), clan))
}

func (f *Factory) profile(w *weapon.Weapon) character.Profile {
	return character.Profile{
		Name:   f.names.Generate(),
		Money:  max(f.roller.Roll(f.money).Total(), 0),
		Weapon: w,
	}
}

func (f *Factory) publish(c *character.Character, err error) (*character.Character, error) {
	if err != nil {
		return nil, err
	}
	f.logger.Debug("character created",
		zap.String("id", c.ID),
		zap.Stringer("character", c),
		zap.Stringer("weapon", c.Weapon()),
		zap.Int("money", c.Money()),
	)
	f.mu.Lock()
	subs := make([]func(*character.Character), len(f.subscribers))
	copy(subs, f.subscribers)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(c)
	}
	return c, nil
}
