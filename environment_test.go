package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentDefineGet(t *testing.T) {
	ctx := NewContext()
	env := NewEnvironment(nil)

	require.NoError(t, env.Define("x", ctx.NewInteger(1)))
	value, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, ctx.NewInteger(1), value)

	_, ok = env.Get("y")
	assert.False(t, ok)
}

func TestEnvironmentRedefinition(t *testing.T) {
	ctx := NewContext()
	outer := NewEnvironment(nil)
	inner := NewEnvironment(outer)

	require.NoError(t, outer.Define("x", ctx.NewInteger(1)))
	err := outer.Define("x", ctx.NewInteger(2))
	assertRuntimeError(t, VariableAlreadyDefined, err)
	assert.Equal(t, "Variable with identifier `x` is already defined.", err.Error())

	// Shadowing in a nested environment is always allowed.
	require.NoError(t, inner.Define("x", ctx.NewInteger(3)))
	value, _ := inner.Get("x")
	assert.Equal(t, ctx.NewInteger(3), value)
	value, _ = outer.Get("x")
	assert.Equal(t, ctx.NewInteger(1), value)
}

func TestEnvironmentGetWalksOutward(t *testing.T) {
	ctx := NewContext()
	global := NewEnvironment(nil)
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)

	require.NoError(t, global.Define("g", ctx.NewString("global")))
	require.NoError(t, middle.Define("m", ctx.NewString("middle")))

	value, ok := inner.Get("g")
	require.True(t, ok)
	assert.Equal(t, ctx.NewString("global"), value)
	value, ok = inner.Get("m")
	require.True(t, ok)
	assert.Equal(t, ctx.NewString("middle"), value)
	_, ok = global.Get("m")
	assert.False(t, ok)
}

func TestEnvironmentAssign(t *testing.T) {
	ctx := NewContext()
	global := NewEnvironment(nil)
	inner := NewEnvironment(global)

	require.NoError(t, global.Define("x", ctx.NewInteger(1)))
	require.NoError(t, inner.Assign("x", ctx.NewInteger(2)))

	value, _ := global.Get("x")
	assert.Equal(t, ctx.NewInteger(2), value)

	// Assign never creates a binding.
	_, ok := inner.store["x"]
	assert.False(t, ok)

	err := inner.Assign("y", ctx.NewInteger(3))
	assertRuntimeError(t, VariableNotDefined, err)
	_, ok = global.Get("y")
	assert.False(t, ok)
}

func TestEnvironmentAssignNearestScope(t *testing.T) {
	ctx := NewContext()
	global := NewEnvironment(nil)
	inner := NewEnvironment(global)

	require.NoError(t, global.Define("x", ctx.NewInteger(1)))
	require.NoError(t, inner.Define("x", ctx.NewInteger(10)))
	require.NoError(t, inner.Assign("x", ctx.NewInteger(20)))

	value, _ := inner.Get("x")
	assert.Equal(t, ctx.NewInteger(20), value)
	value, _ = global.Get("x")
	assert.Equal(t, ctx.NewInteger(1), value)
}

func TestEnvironmentSharedBetweenHolders(t *testing.T) {
	ctx := NewContext()
	shared := NewEnvironment(nil)
	a := NewEnvironment(shared)
	b := NewEnvironment(shared)

	require.NoError(t, a.Define("local", ctx.Nil))
	require.NoError(t, shared.Define("x", ctx.NewInteger(1)))
	require.NoError(t, a.Assign("x", ctx.NewInteger(5)))

	value, ok := b.Get("x")
	require.True(t, ok)
	assert.Equal(t, ctx.NewInteger(5), value)
	_, ok = b.Get("local")
	assert.False(t, ok)
}
