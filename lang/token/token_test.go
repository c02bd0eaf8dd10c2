package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		got := tok.String()
		require.NotEmpty(t, got)
	}
}

func TestIsAugAssign(t *testing.T) {
	require.True(t, PLUS_EQ.IsAugAssign())
	require.True(t, RSHIFT_EQ.IsAugAssign())
	require.False(t, PLUS.IsAugAssign())
	require.False(t, EQ.IsAugAssign())
}

func TestIsCompare(t *testing.T) {
	for _, tok := range []Token{LT, LE, GT, GE, EQL, NEQ, IS, IS_NOT, IN, NOT_IN} {
		require.True(t, tok.IsCompare(), tok.String())
	}
	require.False(t, PLUS.IsCompare())
	require.False(t, AND.IsCompare())
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "and", AND.GoString())
}
