package serialization

import (
	"fmt"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// Save writes named arrays to path as an .axl v2 container.
// Entries are laid out sorted by name, so saving the same arrays twice
// produces byte-identical files apart from the creation timestamp.
func Save[T tensor.DType, B tensor.Backend](path string, arrays map[string]*named.NamedArray[T, B]) error {
	return SaveWithMetadata(path, arrays, nil)
}

// SaveWithMetadata is Save with a free-form metadata map stored in the
// header.
func SaveWithMetadata[T tensor.DType, B tensor.Backend](path string, arrays map[string]*named.NamedArray[T, B], metadata map[string]string) error {
	entries := make(map[string]Entry, len(arrays))
	for name, a := range arrays {
		entries[name] = Entry{Raw: a.Inner().Raw(), Axes: axisMetas(a.Axes())}
	}

	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteEntriesV2(entries, metadata); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Load reads every entry of an .axl file as named arrays of element
// type T. Stored axis names and sizes come back with each array.
func Load[T tensor.DType, B tensor.Backend](path string, backend B) (map[string]*named.NamedArray[T, B], error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	tensors := r.Header().Tensors
	out := make(map[string]*named.NamedArray[T, B], len(tensors))
	for i := range tensors {
		a, err := loadNamed[T, B](r, &tensors[i], backend)
		if err != nil {
			return nil, err
		}
		out[tensors[i].Name] = a
	}
	return out, nil
}

// LoadOne reads a single entry by name.
func LoadOne[T tensor.DType, B tensor.Backend](path, name string, backend B) (*named.NamedArray[T, B], error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	meta, err := r.EntryInfo(name)
	if err != nil {
		return nil, err
	}
	return loadNamed[T, B](r, meta, backend)
}

func loadNamed[T tensor.DType, B tensor.Backend](r *Reader, meta *TensorMeta, backend B) (*named.NamedArray[T, B], error) {
	want := tensor.DataTypeOf[T]()
	if meta.DType != dtypeToString(want) {
		return nil, fmt.Errorf("tensor %q holds %s, requested %s", meta.Name, meta.DType, want)
	}

	raw, err := r.LoadEntry(meta.Name, backend)
	if err != nil {
		return nil, err
	}

	axes := make([]named.Axis, len(meta.Axes))
	for i, ax := range meta.Axes {
		axes[i] = named.Axis{Name: ax.Name, Size: ax.Size}
	}

	a, err := named.Named(tensor.New[T, B](raw, backend), axes...)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", meta.Name, err)
	}
	return a, nil
}

func axisMetas(axes []named.Axis) []AxisMeta {
	out := make([]AxisMeta, len(axes))
	for i, ax := range axes {
		out[i] = AxisMeta{Name: ax.Name, Size: ax.Size}
	}
	return out
}
