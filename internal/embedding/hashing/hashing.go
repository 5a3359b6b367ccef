package hashing

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// Embedder maps text to a fixed-dimension bag-of-words vector using the
// hashing trick. It is deterministic and corpus-independent, so an index
// built in a previous run can be queried without re-reading the documents.
type Embedder struct {
	dimension int
	tokenRe   *regexp.Regexp
}

func NewEmbedder(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = 512
	}
	return &Embedder{
		dimension: dimension,
		tokenRe:   regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
	}
}

func (e *Embedder) Name() string { return "hashing" }

// Prepare is a no-op; hashed features need no corpus pass.
func (e *Embedder) Prepare(corpus []string) error { return nil }

func (e *Embedder) Dimension() int { return e.dimension }

// Embed returns an L2-normalized token-count vector. Text with no tokens
// yields a zero vector.
func (e *Embedder) Embed(text string) ([]float64, error) {
	vec := make([]float64, e.dimension)
	tokens := e.tokenRe.FindAllString(strings.ToLower(text), -1)
	for _, tok := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%uint32(e.dimension)]++
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}
