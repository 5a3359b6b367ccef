package hashing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestEmbedIsDeterministic(t *testing.T) {
	e := NewEmbedder(0)

	a, err := e.Embed("the premium plan details")
	require.NoError(t, err)
	b, err := e.Embed("the premium plan details")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, e.Dimension())
}

func TestEmbedIsNormalized(t *testing.T) {
	e := NewEmbedder(128)

	v, err := e.Embed("premium plan coverage")
	require.NoError(t, err)

	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestEmbedRanksSharedTokensHigher(t *testing.T) {
	e := NewEmbedder(0)

	q, err := e.Embed("premium plan")
	require.NoError(t, err)
	related, err := e.Embed("the premium plan includes priority support")
	require.NoError(t, err)
	unrelated, err := e.Embed("holiday schedule announcement")
	require.NoError(t, err)

	assert.Greater(t, cosine(q, related), cosine(q, unrelated))
}

func TestEmbedEmptyTextYieldsZeroVector(t *testing.T) {
	e := NewEmbedder(64)

	v, err := e.Embed("")
	require.NoError(t, err)

	for _, x := range v {
		assert.Zero(t, x)
	}
}

func TestPrepareIsNoop(t *testing.T) {
	e := NewEmbedder(0)
	require.NoError(t, e.Prepare([]string{"anything"}))
	assert.Equal(t, "hashing", e.Name())
}
