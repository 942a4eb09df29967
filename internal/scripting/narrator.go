package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
	"github.com/cory-johannsen/stoneandsaber/internal/game/world"
)

// Hook names called by Narrator, keyed by record kind.
var hooks = map[world.RecordKind]string{
	world.RecordCreated:  "on_create",
	world.RecordDrink:    "on_drink",
	world.RecordDuel:     "on_duel",
	world.RecordDeath:    "on_death",
	world.RecordExtort:   "on_extort",
	world.RecordRefused:  "on_refused",
	world.RecordDonate:   "on_donate",
	world.RecordBefriend: "on_befriend",
}

// Narrator forwards world records to Lua hooks. Each hook receives a single
// event table:
//
//	{ generation = n, kind = "duel", actor = {...}, target = {...}, amount = n,
//	  winner = {...}, loser = {...}, rounds = n }
//
// where character tables hold id, name, kind, money, life and weapon. A hook
// that returns a string has it logged as a chronicle line.
type Narrator struct {
	mgr    *Manager
	logger *zap.Logger
}

// NewNarrator creates a Narrator calling hooks on mgr.
//
// Precondition: mgr and logger must not be nil.
func NewNarrator(mgr *Manager, logger *zap.Logger) *Narrator {
	return &Narrator{mgr: mgr, logger: logger}
}

// Narrate calls the hook matching r.Kind, if any script defines it.
func (n *Narrator) Narrate(r world.Record) {
	hook, ok := hooks[r.Kind]
	if !ok {
		return
	}
	ret, err := n.mgr.call(hook, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{eventTable(L, r)}
	})
	if err != nil {
		return
	}
	if s, ok := ret.(lua.LString); ok && s != "" {
		n.logger.Info(string(s),
			zap.Int("generation", r.Generation),
			zap.Stringer("event", r.Kind),
			zap.String("hook", hook),
		)
	}
}

func eventTable(L *lua.LState, r world.Record) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "generation", lua.LNumber(r.Generation))
	L.SetField(t, "kind", lua.LString(r.Kind.String()))
	L.SetField(t, "amount", lua.LNumber(r.Amount))
	if r.Actor != nil {
		L.SetField(t, "actor", characterTable(L, r.Actor))
	}
	if r.Target != nil {
		L.SetField(t, "target", characterTable(L, r.Target))
	}
	if r.Duel != nil {
		L.SetField(t, "rounds", lua.LNumber(r.Duel.Rounds))
		L.SetField(t, "initiator_won", lua.LBool(r.Duel.InitiatorWon))
		if c, ok := r.Duel.Winner.(*character.Character); ok {
			L.SetField(t, "winner", characterTable(L, c))
		}
		if c, ok := r.Duel.Loser.(*character.Character); ok {
			L.SetField(t, "loser", characterTable(L, c))
		}
	}
	return t
}

func characterTable(L *lua.LState, c *character.Character) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(c.ID))
	L.SetField(t, "name", lua.LString(c.Name))
	L.SetField(t, "kind", lua.LString(c.Kind().String()))
	L.SetField(t, "money", lua.LNumber(c.Money()))
	L.SetField(t, "life", lua.LNumber(c.Life()))
	L.SetField(t, "weapon", lua.LString(c.Weapon().Name()))
	return t
}
