package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.log and engine.dice tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	log := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		L.SetField(log, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", log)

	dice := L.NewTable()
	L.SetField(dice, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "dice", dice)
}

// luaRoll implements engine.dice.roll(expr). It returns a table with the
// fields total, dice (sum of the dice) and modifier, or raises a Lua error
// for a malformed expression.
func (m *Manager) luaRoll(L *lua.LState) int {
	res, err := m.roller.RollExpr(L.CheckString(1))
	if err != nil {
		L.RaiseError("engine.dice.roll: %v", err)
		return 0
	}
	t := L.NewTable()
	L.SetField(t, "total", lua.LNumber(res.Total()))
	L.SetField(t, "dice", lua.LNumber(res.Total()-res.Modifier))
	L.SetField(t, "modifier", lua.LNumber(res.Modifier))
	L.Push(t)
	return 1
}
