package binding

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LoadLua evaluates a Lua binding profile and returns the contexts it
// defines. The script must return an array of context tables:
//
//	return {
//	  {
//	    name = "view",
//	    bindings = {
//	      { action = "moveForward", trigger = { type = "key", code = "W" } },
//	      { action = "walkTo",
//	        trigger = { type = "button", button = "left", on = "press" },
//	        when = "no-mods", pick = true },
//	    },
//	  },
//	}
//
// The script only returns data: guard conditions stay named references to
// registered pure predicates, so mapping determinism is unaffected by the
// profile being scripted. Only the base and table libraries are opened.
func LoadLua(path string) ([]*Context, error) {
	ls := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer ls.Close()

	openSafeLibs(ls)

	if err := ls.DoFile(path); err != nil {
		return nil, fmt.Errorf("evaluating binding profile: %w", err)
	}
	return contextsFromLua(ls.Get(-1))
}

// LoadLuaString evaluates an in-memory Lua binding profile.
func LoadLuaString(script string) ([]*Context, error) {
	ls := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer ls.Close()

	openSafeLibs(ls)

	if err := ls.DoString(script); err != nil {
		return nil, fmt.Errorf("evaluating binding profile: %w", err)
	}
	return contextsFromLua(ls.Get(-1))
}

// openSafeLibs opens only the libraries a data-producing profile needs. The
// io, os and debug libraries stay closed.
func openSafeLibs(ls *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
		{lua.StringLibName, lua.OpenString},
	} {
		ls.Push(ls.NewFunction(lib.open))
		ls.Push(lua.LString(lib.name))
		ls.Call(1, 0)
	}
}

// contextsFromLua converts the script's return value into validated contexts.
func contextsFromLua(v lua.LValue) ([]*Context, error) {
	root, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("binding profile must return a table, got %s", v.Type())
	}

	var contexts []*Context
	var convErr error
	root.ForEach(func(_, entry lua.LValue) {
		if convErr != nil {
			return
		}
		tbl, ok := entry.(*lua.LTable)
		if !ok {
			convErr = fmt.Errorf("context entry must be a table, got %s", entry.Type())
			return
		}
		spec, err := tableSpecFromLua(tbl)
		if err != nil {
			convErr = err
			return
		}
		ctx, err := buildContext(spec)
		if err != nil {
			convErr = err
			return
		}
		contexts = append(contexts, ctx)
	})
	if convErr != nil {
		return nil, convErr
	}
	return contexts, nil
}

// tableSpecFromLua converts one context table into the loader's shared spec.
func tableSpecFromLua(tbl *lua.LTable) (tableSpec, error) {
	spec := tableSpec{Name: luaString(tbl, "name")}

	bindings, ok := tbl.RawGetString("bindings").(*lua.LTable)
	if !ok {
		return spec, fmt.Errorf("context %q has no bindings table", spec.Name)
	}

	var convErr error
	bindings.ForEach(func(_, entry lua.LValue) {
		if convErr != nil {
			return
		}
		btbl, ok := entry.(*lua.LTable)
		if !ok {
			convErr = fmt.Errorf("context %q: binding entry must be a table", spec.Name)
			return
		}
		bs := bindingSpec{
			Action:      luaString(btbl, "action"),
			When:        luaString(btbl, "when"),
			Pick:        luaBool(btbl, "pick"),
			Description: luaString(btbl, "description"),
		}
		if n, ok := btbl.RawGetString("value").(lua.LNumber); ok {
			v := float64(n)
			bs.Value = &v
		}
		if ttbl, ok := btbl.RawGetString("trigger").(*lua.LTable); ok {
			ts := triggerSpecFromLua(ttbl)
			bs.Trigger = &ts
		}
		if alts, ok := btbl.RawGetString("triggers").(*lua.LTable); ok {
			alts.ForEach(func(_, alt lua.LValue) {
				if atbl, ok := alt.(*lua.LTable); ok {
					bs.Triggers = append(bs.Triggers, triggerSpecFromLua(atbl))
				}
			})
		}
		spec.Bindings = append(spec.Bindings, bs)
	})
	if convErr != nil {
		return spec, convErr
	}
	return spec, nil
}

// triggerSpecFromLua converts one trigger table.
func triggerSpecFromLua(tbl *lua.LTable) triggerSpec {
	ts := triggerSpec{
		Type:    luaString(tbl, "type"),
		Code:    luaString(tbl, "code"),
		On:      luaString(tbl, "on"),
		Button:  luaString(tbl, "button"),
		Gesture: luaString(tbl, "gesture"),
	}
	if n, ok := tbl.RawGetString("clicks").(lua.LNumber); ok {
		ts.Clicks = int(n)
	}
	if while, ok := tbl.RawGetString("while").(*lua.LTable); ok {
		while.ForEach(func(_, name lua.LValue) {
			if s, ok := name.(lua.LString); ok {
				ts.While = append(ts.While, string(s))
			}
		})
	}
	return ts
}

func luaString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func luaBool(tbl *lua.LTable, key string) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return false
}
