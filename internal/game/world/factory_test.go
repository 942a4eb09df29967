package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/stoneandsaber/internal/config"
	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
	"github.com/cory-johannsen/stoneandsaber/internal/game/world"
)

func factory(src dice.Source, money string) *world.Factory {
	return world.NewFactory(
		dice.NewLoggedRoller(src, zap.NewNop()),
		weapon.NewCatalog(zap.NewNop()),
		dice.MustParse(money),
		zap.NewNop(),
	)
}

func TestFactory_CreatesEachKind(t *testing.T) {
	f := factory(fixedSrc{0}, "1d6+9")
	lord, clan := character.NewLord("Tuzu"), character.NewClan("Abso")

	m, err := f.NewMerchant()
	require.NoError(t, err)
	assert.Equal(t, character.KindMerchant, m.Kind())
	assert.Equal(t, weapon.NoWeapon, m.Weapon().Name())
	assert.Equal(t, 10, m.Money())
	assert.Equal(t, "Aa", m.Name)

	s, err := f.NewSamurai(lord)
	require.NoError(t, err)
	assert.Equal(t, weapon.Sword, s.Weapon().Name())

	tr, err := f.NewTraitor(lord)
	require.NoError(t, err)
	assert.Equal(t, weapon.Dagger, tr.Weapon().Name())

	y, err := f.NewYakuza(clan)
	require.NoError(t, err)
	assert.Equal(t, character.KindYakuza, y.Kind())

	assert.Equal(t, []*character.Character{s, tr}, lord.Vassals())
	assert.Equal(t, []*character.Character{y}, clan.Members())
}

func TestFactory_MissingRelation(t *testing.T) {
	f := factory(fixedSrc{0}, "1d6")
	_, err := f.NewSamurai(nil)
	assert.ErrorIs(t, err, character.ErrMissingRelation)
	_, err = f.NewYakuza(nil)
	assert.ErrorIs(t, err, character.ErrMissingRelation)
}

func TestFactory_OnCreate(t *testing.T) {
	f := factory(fixedSrc{0}, "1d6")
	var seen []*character.Character
	var order []int
	f.OnCreate(func(c *character.Character) { seen = append(seen, c); order = append(order, 1) })
	f.OnCreate(func(*character.Character) { order = append(order, 2) })

	m, err := f.NewMerchant()
	require.NoError(t, err)
	_, err = f.NewSamurai(nil)
	require.Error(t, err)

	assert.Equal(t, []*character.Character{m}, seen, "failed creations are not published")
	assert.Equal(t, []int{1, 2}, order)
}

func TestPropertyFactory_MoneyWithinExpression(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64Min(1).Draw(rt, "seed")
		f := factory(dice.NewSeededSource(seed), "1d101-1")
		m, err := f.NewMerchant()
		if err != nil {
			rt.Fatal(err)
		}
		if m.Money() < 0 || m.Money() > 100 {
			rt.Fatalf("money %d outside [0, 100]", m.Money())
		}
	})
}

func TestRollSeed(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	roller := dice.NewLoggedRoller(fixedSrc{0}, zap.NewNop())

	s, err := world.RollSeed(cfg.World, roller)
	require.NoError(t, err)
	assert.Equal(t, world.Seed{Samurais: 3, Yakuzas: 3, Merchants: 3, Traitors: 0}, s)
	assert.Equal(t, 9, s.Total())

	roller = dice.NewLoggedRoller(fixedSrc{100}, zap.NewNop())
	s, err = world.RollSeed(cfg.World, roller)
	require.NoError(t, err)
	assert.Equal(t, world.Seed{Samurais: 10, Yakuzas: 10, Merchants: 5, Traitors: 2}, s)

	cfg.World.Samurais = "many"
	_, err = world.RollSeed(cfg.World, roller)
	assert.ErrorContains(t, err, "samurais")
}
