package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Facts is the flat snapshot of player state exposed to condition
// expressions as the global `player` table. Inventory is surfaced through
// the has_item(name) function rather than a table, so conditions read
// naturally: `player.xp > 5 and has_item("rusty_key")`.
type Facts struct {
	XP     int
	HP     int
	MaxHP  int
	Gold   int
	Curses int
	// HasItem reports whether the player carries the named item. A nil
	// func makes has_item always return false.
	HasItem func(itemID string) bool
}

// Evaluator runs boolean condition expressions. Each Eval builds a fresh VM,
// so a hostile or broken expression can never poison later evaluations.
type Evaluator struct {
	instLimit int
	logger    *zap.Logger
}

// NewEvaluator creates an Evaluator.
//
// Precondition: logger must be non-nil; instLimit <= 0 uses
// DefaultInstructionLimit.
func NewEvaluator(instLimit int, logger *zap.Logger) *Evaluator {
	return &Evaluator{instLimit: instLimit, logger: logger}
}

// Eval evaluates expr as a boolean expression against the given facts.
//
// Any Lua value except nil and false is truthy, matching Lua semantics. A
// syntax error, runtime error, or blown instruction limit is a content
// fault: Eval logs it at Warn and returns (false, err) so the caller can
// skip the trigger and keep the session running.
//
// Postcondition: never panics on malformed input.
func (e *Evaluator) Eval(expr string, facts Facts) (bool, error) {
	L := newSandboxedState(e.instLimit)
	defer L.Close()

	bindFacts(L, facts)

	if err := L.DoString("return (" + expr + ")"); err != nil {
		e.logger.Warn("condition expression failed",
			zap.String("expression", expr),
			zap.Error(err))
		return false, fmt.Errorf("evaluating condition %q: %w", expr, err)
	}

	result := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(result), nil
}

// bindFacts installs the player table and has_item into the VM.
func bindFacts(L *lua.LState, facts Facts) {
	playerTbl := L.NewTable()
	L.SetField(playerTbl, "xp", lua.LNumber(facts.XP))
	L.SetField(playerTbl, "hp", lua.LNumber(facts.HP))
	L.SetField(playerTbl, "max_hp", lua.LNumber(facts.MaxHP))
	L.SetField(playerTbl, "gold", lua.LNumber(facts.Gold))
	L.SetField(playerTbl, "curses", lua.LNumber(facts.Curses))
	L.SetGlobal("player", playerTbl)

	L.SetGlobal("has_item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		carried := facts.HasItem != nil && facts.HasItem(name)
		L.Push(lua.LBool(carried))
		return 1
	}))
}
