package weapon_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/stoneandsaber/internal/game/effect"
	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

type target struct {
	st      *status.Status
	tracker *effect.Tracker
}

func newTarget() *target {
	return &target{st: status.Default(), tracker: effect.NewTracker()}
}

func (t *target) Status() *status.Status           { return t.st }
func (t *target) AddTrouble(e effect.Effect) error { return t.tracker.Add(e) }

func TestBuilder_Injuring(t *testing.T) {
	w, err := weapon.NewBuilder("Club").Injuring(30).Build()
	require.NoError(t, err)
	assert.Equal(t, "Club", w.Name())
	assert.Equal(t, "Club(PHYSICAL:30)", w.String())

	tg := newTarget()
	require.NoError(t, w.UseOn(tg))
	assert.Equal(t, 470, tg.st.Life())
	assert.Equal(t, 0, tg.tracker.Len())
}

func TestBuilder_CuringAndNamed(t *testing.T) {
	w, err := weapon.NewBuilder("x").Named("Salve").Curing(40).Build()
	require.NoError(t, err)
	tg := newTarget()
	tg.st.SetLife(100)
	require.NoError(t, w.UseOn(tg))
	assert.Equal(t, 140, tg.st.Life())
	assert.Equal(t, "Salve(FAIRY:40)", w.String())
}

func TestBuilder_BurningQueuesTrouble(t *testing.T) {
	w, err := weapon.NewBuilder("Torch").Burning(10, 2).Build()
	require.NoError(t, err)
	tg := newTarget()
	require.NoError(t, w.UseOn(tg))
	assert.Equal(t, 500, tg.st.Life())
	require.Equal(t, 1, tg.tracker.Len())
	assert.Equal(t, 2, tg.tracker.All()[0].Remaining())
}

func TestBuilder_AccumulatesErrors(t *testing.T) {
	w, err := weapon.NewBuilder("").Injuring(-1).Curing(-2).Burning(5, 0).Build()
	assert.Nil(t, w)
	require.Error(t, err)
	assert.True(t, errors.Is(err, effect.ErrInvalidAmount))
	assert.Contains(t, err.Error(), "name must not be empty")
	assert.Contains(t, err.Error(), "ticks")
}

func TestBuilder_BuildIsIndependentCopy(t *testing.T) {
	b := weapon.NewBuilder("Sling").Injuring(5)
	first, err := b.Build()
	require.NoError(t, err)
	b.Injuring(7)
	second, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, first.Effects(), 1)
	assert.Len(t, second.Effects(), 2)
}

func TestWeapon_EffectsIsCopy(t *testing.T) {
	w, err := weapon.NewBuilder("Club").Injuring(30).Build()
	require.NoError(t, err)
	effs := w.Effects()
	effs[0] = effect.Effect{}
	assert.Equal(t, "Club(PHYSICAL:30)", w.String())
}

func TestWeapon_SharedAcrossTargetsDoesNotAlias(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	w := c.MustCreate(weapon.BurningSword)
	a, b := newTarget(), newTarget()
	require.NoError(t, w.UseOn(a))
	a.tracker.Process(a.st)
	require.NoError(t, w.UseOn(b))

	assert.Equal(t, 2, a.tracker.All()[0].Remaining())
	assert.Equal(t, 3, b.tracker.All()[0].Remaining())
}

func TestCatalog_Presets(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	cases := map[string]int{
		weapon.Sword:    300,
		weapon.Dagger:   400,
		weapon.Bow:      350,
		weapon.NoWeapon: 500,
	}
	for name, life := range cases {
		w, err := c.Create(name)
		require.NoError(t, err, name)
		tg := newTarget()
		require.NoError(t, w.UseOn(tg))
		assert.Equal(t, life, tg.st.Life(), name)
	}
}

func TestCatalog_BurningSword(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	w, err := c.Create(weapon.BurningSword)
	require.NoError(t, err)
	tg := newTarget()
	require.NoError(t, w.UseOn(tg))
	assert.Equal(t, 300, tg.st.Life())
	for range 3 {
		tg.tracker.Process(tg.st)
	}
	assert.Equal(t, 150, tg.st.Life())
	assert.Equal(t, 0, tg.tracker.Len())
}

func TestCatalog_Cure(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	w, err := c.Create(weapon.Cure)
	require.NoError(t, err)
	tg := newTarget()
	tg.st.SetLife(250)
	require.NoError(t, w.UseOn(tg))
	assert.Equal(t, 350, tg.st.Life())
}

func TestCatalog_UnknownWeapon(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	w, err := c.Create("Halberd")
	assert.Nil(t, w)
	assert.True(t, errors.Is(err, weapon.ErrUnknownWeapon))
	assert.Panics(t, func() { c.MustCreate("Halberd") })
}

func TestCatalog_Names(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	assert.Equal(t, []string{"Bow", "Burning Sword", "Cure", "Dagger", "No Weapon", "Sword"}, c.Names())
}

func TestCatalog_AnyDrawsFromArmory(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	assert.Equal(t, weapon.Sword, c.Any(fixedSrc{0}).Name())
	assert.Equal(t, weapon.BurningSword, c.Any(fixedSrc{1}).Name())
	assert.Equal(t, weapon.Bow, c.Any(fixedSrc{2}).Name())
	assert.Equal(t, weapon.Dagger, c.Any(fixedSrc{3}).Name())
	assert.Equal(t, weapon.Dagger, c.Any(fixedSrc{99}).Name(), "cure and bare hands never drawn")
}

func TestCatalog_RegisterDuplicate(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	err := c.Register(&weapon.Def{Name: weapon.Sword})
	assert.Error(t, err)
}

func TestCatalog_RegisterArmoryJoinsAny(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	require.NoError(t, c.Register(&weapon.Def{
		Name:    "Naginata",
		Armory:  true,
		Effects: []weapon.EffectDef{{Kind: "instant", Direction: "decrease", Element: "physical", Amount: 180}},
	}))
	assert.Equal(t, "Naginata", c.Any(fixedSrc{4}).Name())
}

func TestDef_ValidateCollectsErrors(t *testing.T) {
	d := &weapon.Def{Effects: []weapon.EffectDef{
		{Kind: "sometimes", Amount: 1},
		{Direction: "sideways", Amount: 1},
		{Element: "plasma", Amount: 1},
		{Amount: -3},
	}}
	err := d.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "name must not be empty")
	assert.Contains(t, msg, "effects[0]")
	assert.Contains(t, msg, "effects[1]")
	assert.Contains(t, msg, "effects[2]")
	assert.Contains(t, msg, "effects[3]")
}

func TestDef_LastingDefaultsTicks(t *testing.T) {
	d := &weapon.Def{Name: "Venom", Effects: []weapon.EffectDef{{Kind: "lasting", Element: "poison", Amount: 5}}}
	w, err := d.Build()
	require.NoError(t, err)
	effs := w.Effects()
	require.Len(t, effs, 1)
	assert.True(t, effs[0].IsLasting())
	assert.Equal(t, effect.DefaultTicks, effs[0].Ticks())
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "katana.yaml", `
name: Katana
armory: true
effects:
  - kind: instant
    direction: decrease
    element: physical
    amount: 250
`)
	writeFile(t, dir, "frost.yaml", `
name: Frost Fan
effects:
  - kind: lasting
    direction: decrease
    element: ice
    amount: 15
    ticks: 4
`)
	writeFile(t, dir, "notes.txt", "ignored")

	c := weapon.NewCatalog(zap.NewNop())
	n, err := c.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	w, err := c.Create("Frost Fan")
	require.NoError(t, err)
	assert.Equal(t, "Frost Fan(ICE:15)", w.String())
	assert.Equal(t, 4, w.Effects()[0].Ticks())
	assert.Equal(t, "Katana", c.Any(fixedSrc{4}).Name())
}

func TestLoadDefinitions_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "name: Odd\nsharpness: 9\n")
	_, err := weapon.LoadDefinitions(dir)
	assert.Error(t, err)
}

func TestLoadDefinitions_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "name: Odd\neffects:\n  - amount: -5\n")
	_, err := weapon.LoadDefinitions(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, effect.ErrInvalidAmount))
}

func TestLoadDefinitions_MissingDir(t *testing.T) {
	_, err := weapon.LoadDefinitions("/nonexistent/weapons")
	assert.Error(t, err)
}

func TestPropertyInjuringReducesLifeByAmount(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		amount := rapid.IntRange(0, 1000).Draw(rt, "amount")
		w, err := weapon.NewBuilder("Test").Injuring(amount).Build()
		require.NoError(rt, err)
		tg := newTarget()
		require.NoError(rt, w.UseOn(tg))
		assert.Equal(rt, max(500-amount, 0), tg.st.Life())
	})
}

// repoRoot walks up from the test's working directory to find the module root.
func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatalf("could not find repo root from %s", wd)
		}
		root = parent
	}
}

func TestLoadDirectory_ShippedContent(t *testing.T) {
	c := weapon.NewCatalog(zap.NewNop())
	n, err := c.LoadDirectory(filepath.Join(repoRoot(t), "content", "weapons"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	needle, err := c.Create("Poison Needle")
	require.NoError(t, err)
	assert.Equal(t, "Poison Needle(PHYSICAL:40, POISON:40)", needle.String())
	assert.Equal(t, 5, needle.Effects()[1].Ticks())

	charm, err := c.Create("Healing Charm")
	require.NoError(t, err)
	assert.Equal(t, effect.Increase, charm.Effects()[0].Action().Direction())
}
