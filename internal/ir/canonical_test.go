package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_EmptyGraph(t *testing.T) {
	data, err := MarshalCanonical(New("empty"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"empty","nodes":[]}`, string(data))
}

func TestMarshalCanonical_FixedShape(t *testing.T) {
	g := New("g")
	g.AddPlain(g.Root(), "load")
	_, thenB, elseB := g.AddConditional(g.Root(), "if")
	g.AddPlain(thenB, "a")
	_ = elseB
	_, body := g.AddRegion(g.Root(), "loop")
	g.AddPlain(body, "b")

	data, err := MarshalCanonical(g)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"g","nodes":[`+
			`{"op":"load","kind":"plain"},`+
			`{"op":"if","kind":"conditional","then":[{"op":"a","kind":"plain"}],"else":[]},`+
			`{"op":"loop","kind":"region","body":[{"op":"b","kind":"plain"}]}`+
			`]}`,
		string(data))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	g := New("g")
	g.AddPlain(g.Root(), "a<b>&c")

	data, err := MarshalCanonical(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a<b>&c"`)
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// "é" composed vs decomposed must serialize identically.
	composed := New("g")
	composed.AddPlain(composed.Root(), "café")
	decomposed := New("g")
	decomposed.AddPlain(decomposed.Root(), "café")

	a, err := MarshalCanonical(composed)
	require.NoError(t, err)
	b, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGraphID_IndependentOfArenaLayout(t *testing.T) {
	// Build the same structure in two different insertion orders so the
	// arenas differ while the structure does not.
	first := New("g")
	_, body := first.AddRegion(first.Root(), "loop")
	first.AddPlain(body, "x")
	first.AddPlain(first.Root(), "tail")

	second := New("g")
	n, body2 := second.AddRegion(second.Root(), "loop")
	_ = n
	second.AddPlain(second.Root(), "tail")
	second.AddPlain(body2, "x")

	assert.Equal(t, MustGraphID(first), MustGraphID(second))
}

func TestGraphID_SensitiveToStructure(t *testing.T) {
	flat := New("g")
	flat.AddPlain(flat.Root(), "a")

	nested := New("g")
	_, body := nested.AddRegion(nested.Root(), "loop")
	nested.AddPlain(body, "a")

	assert.NotEqual(t, MustGraphID(flat), MustGraphID(nested))

	renamed := New("h")
	renamed.AddPlain(renamed.Root(), "a")
	assert.NotEqual(t, MustGraphID(flat), MustGraphID(renamed))
}

func TestGraphID_IsHexSHA256(t *testing.T) {
	id := MustGraphID(New("g"))
	assert.Len(t, id, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", id)
}
