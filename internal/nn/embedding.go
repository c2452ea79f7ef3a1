package nn

import (
	"fmt"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/random"
	"github.com/axial-ml/axial/internal/tensor"
)

// Embedding maps integer ids to dense vectors by row lookup in a
// (Vocab, Embed) weight table.
type Embedding[B tensor.Backend] struct {
	Weight *named.NamedArray[float32, B] // (Vocab, Embed)
	Vocab  named.Axis
	Embed  named.Axis
}

// NewEmbedding creates an Embedding with weights drawn from N(0, 1).
func NewEmbedding[B tensor.Backend](vocab, embed named.Axis, key random.Key, b B) *Embedding[B] {
	return &Embedding[B]{
		Weight: random.Normal[float32](key, named.Axes(vocab, embed), b),
		Vocab:  vocab,
		Embed:  embed,
	}
}

// Forward gathers the rows selected by ids. The vocabulary axis is
// replaced by the id array's axes, so (Batch, Pos) ids yield a
// (Batch, Pos, Embed) result.
func (e *Embedding[B]) Forward(ids *named.NamedArray[int32, B]) *named.NamedArray[float32, B] {
	return e.Weight.Take(named.AxisName(e.Vocab.Name), ids)
}

// StateDict returns the weight table under "weight".
func (e *Embedding[B]) StateDict() StateDict[B] {
	return StateDict[B]{"weight": e.Weight}
}

// LoadStateDict copies "weight" from sd, aligning axes by name.
func (e *Embedding[B]) LoadStateDict(sd StateDict[B]) error {
	if err := loadParam(sd, "weight", e.Weight); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}
	return nil
}
