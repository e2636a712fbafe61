package decode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexToChar(t *testing.T) {
	require.Equal(t, byte('0'), IndexToChar(0))
	require.Equal(t, byte('9'), IndexToChar(9))
	require.Equal(t, byte('a'), IndexToChar(10))
	require.Equal(t, byte('z'), IndexToChar(35))

	// Total and injective over the whole class range
	seen := map[byte]bool{}
	for i := 0; i < 36; i++ {
		c := IndexToChar(i)
		require.False(t, seen[c], "duplicate character %c for index %d", c, i)
		require.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z'))
		seen[c] = true
	}
}

func TestArgmax(t *testing.T) {
	require.Equal(t, 0, Argmax([]float32{1}))
	require.Equal(t, 2, Argmax([]float32{0.1, 0.2, 0.6, 0.1}))
	require.Equal(t, 3, Argmax([]float32{0, 0, 0, 0.001}))

	// Ties resolve to the first-occurring maximum
	require.Equal(t, 1, Argmax([]float32{0.1, 0.4, 0.4, 0.1}))
	require.Equal(t, 0, Argmax([]float32{0.5, 0.5, 0.5}))
}

func TestText(t *testing.T) {
	oneHot := func(idx int) []float32 {
		v := make([]float32, 36)
		v[idx] = 1
		return v
	}

	// "7f0z" spelled out as one-hot slot distributions
	slots := [][]float32{oneHot(7), oneHot(15), oneHot(0), oneHot(35)}
	require.Equal(t, "7f0z", Text(slots))

	// Decoding is a pure function of the distributions
	require.Equal(t, Text(slots), Text(slots))

	require.Equal(t, "", Text(nil))
}
