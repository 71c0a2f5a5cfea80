// Package lua exposes the EDN scalar reader to gopher-lua scripts.
//
//	local edn = require("edn")
//	local v, err = edn.read("12/8")        -- {ratio="3/2"}
//	local vs, err = edn.read_all("1 :a/b")  -- {1, {keyword="b", ns="a"}, n=2}
//
// Strings, booleans and floats map to Lua values; integers map to numbers when a
// float64 holds them exactly. Everything else becomes a table tagged by its kind.
// Failures return nil and a table {err=..., line=..., column=...}.
package lua

import (
	"math/big"

	"github.com/alttpo/edn"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "edn"

// largest magnitude a Lua number holds exactly
const maxExactInt = 1 << 53

var exports = map[string]lua.LGFunction{
	"read":     read,
	"read_all": readAll,
}

// Preload makes require("edn") available in L.
func Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, Loader)
}

// Loader builds the edn module table; it is the loader Preload registers.
func Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), exports)
	L.Push(mod)
	return 1
}

func newReader(L *lua.LState) *edn.Reader {
	text := L.CheckString(1)
	opts := edn.DefaultOptions
	opts.TrackLines = true
	opts.SourceName = L.OptString(2, "")
	return edn.NewReader(edn.NewStringSource(text), opts)
}

// read(text [, source]) returns the first value of text.
func read(L *lua.LState) int {
	r := newReader(L)
	v, err := readValue(r)
	if err != nil {
		return pushError(L, err)
	}
	L.Push(ToLua(L, v))
	return 1
}

// read_all(text [, source]) returns every value of text as an array with a count in n.
func readAll(L *lua.LState) int {
	vs, err := newReader(L).ReadAll()
	if err != nil {
		return pushError(L, err)
	}

	tb := L.NewTable()
	for i, v := range vs {
		tb.RawSetInt(i+1, ToLua(L, v))
	}
	tb.RawSetString("n", lua.LNumber(len(vs)))
	L.Push(tb)
	return 1
}

func readValue(r *edn.Reader) (v edn.Value, err error) {
	v, err = r.Read()
	if err == nil && v.Kind == edn.KindMacro && v.Char == ':' {
		v, err = r.ReadKeyword()
	}
	return
}

func pushError(L *lua.LState, err error) int {
	perr := L.NewTable()
	perr.RawSetString("err", lua.LString(err.Error()))
	if e, ok := err.(*edn.Error); ok {
		perr.RawSetString("line", lua.LNumber(e.Line))
		perr.RawSetString("column", lua.LNumber(e.Column))
	}
	L.Push(lua.LNil)
	L.Push(perr)
	return 2
}

// ToLua converts v to its Lua representation.
func ToLua(L *lua.LState, v edn.Value) lua.LValue {
	switch v.Kind {
	case edn.KindNil:
		return lua.LNil
	case edn.KindBool:
		return lua.LBool(v.Bool)
	case edn.KindInt:
		if v.Int >= -maxExactInt && v.Int <= maxExactInt {
			return lua.LNumber(v.Int)
		}
		return tagged(L, "bigint", new(big.Int).SetInt64(v.Int).String())
	case edn.KindBigInt:
		return tagged(L, "bigint", v.Big.String())
	case edn.KindFloat:
		return lua.LNumber(v.Float)
	case edn.KindBigDecimal:
		return tagged(L, "decimal", v.Decimal.String())
	case edn.KindRatio:
		return tagged(L, "ratio", v.Ratio.String())
	case edn.KindChar:
		return tagged(L, "char", string(v.Char))
	case edn.KindString:
		return lua.LString(v.Text)
	case edn.KindSymbol:
		return named(L, "symbol", v)
	case edn.KindKeyword:
		return named(L, "keyword", v)
	case edn.KindMacro:
		return tagged(L, "macro", string(v.Char))
	}
	return lua.LNil
}

func tagged(L *lua.LState, kind, text string) *lua.LTable {
	t := L.NewTable()
	t.RawSetString(kind, lua.LString(text))
	return t
}

func named(L *lua.LState, kind string, v edn.Value) *lua.LTable {
	t := tagged(L, kind, v.Text)
	if v.Namespace != "" {
		t.RawSetString("ns", lua.LString(v.Namespace))
	}
	return t
}
