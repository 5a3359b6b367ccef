package embedding

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus; remote
// implementations typically learn their dimension on the first call.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}
