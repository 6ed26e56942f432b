package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LeafWhitespace(t *testing.T) {
	tokens, err := Normalize("  ServiceOrder \t :   0F4E1ECE  ")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Kind: Leaf, Key: "ServiceOrder", Value: "0F4E1ECE"}, tokens[0])
}

func TestNormalize_BracesGetOwnLines(t *testing.T) {
	// Braces packed onto shared lines must split apart.
	tokens, err := Normalize("A : <dictionary> {\n  B : 1 }")
	require.NoError(t, err)
	want := []Token{
		{Kind: Leaf, Key: "A", Value: "<dictionary>"},
		{Kind: Open},
		{Kind: Leaf, Key: "B", Value: "1"},
		{Kind: Close},
	}
	assert.Equal(t, want, tokens)
}

func TestNormalize_DropsBlankLines(t *testing.T) {
	tokens, err := Normalize("\n\n  A : 1\n\n\n  B : 2\n")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "A", tokens[0].Key)
	assert.Equal(t, "B", tokens[1].Key)
}

func TestNormalize_ColonlessLineKeepsKey(t *testing.T) {
	tokens, err := Normalize("orphan line")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Kind: Leaf, Key: "orphan line", Value: ""}, tokens[0])
}

func TestNormalize_ValueKeepsLaterColons(t *testing.T) {
	tokens, err := Normalize("addr : fe80::1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "addr", tokens[0].Key)
	assert.Equal(t, "fe80::1", tokens[0].Value)
}

func TestNormalize_UnbalancedClose(t *testing.T) {
	_, err := Normalize("A : 1\n}\n")
	require.Error(t, err)

	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
}

func TestNormalize_UnclosedBlock(t *testing.T) {
	_, err := Normalize("A : <dictionary>\n{\nB : 1")
	require.Error(t, err)

	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Message, "unclosed")
}

func TestNormalize_Empty(t *testing.T) {
	tokens, err := Normalize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestRender_RoundTrip(t *testing.T) {
	tokens := []Token{
		{Kind: Leaf, Key: "A", Value: "<dictionary>"},
		{Kind: Open},
		{Kind: Leaf, Key: "B", Value: "1"},
		{Kind: Leaf, Key: "C", Value: ""},
		{Kind: Close},
	}
	again, err := Normalize(Render(tokens))
	require.NoError(t, err)
	assert.Equal(t, tokens, again)
}
