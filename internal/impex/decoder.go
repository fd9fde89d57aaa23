package impex

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Decoder turns an uploaded holdings file into document text for the codec.
type Decoder interface {
	Decode(r io.Reader) (string, error)
	Extensions() []string
}

// Registry holds decoders keyed by file extension.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder. Panics on a duplicate extension.
func (r *Registry) Register(d Decoder) {
	for _, ext := range d.Extensions() {
		key := strings.ToLower(ext)
		if _, ok := r.decoders[key]; ok {
			panic("duplicate decoder extension: " + key)
		}
		r.decoders[key] = d
	}
}

// Get returns the decoder for a file path, or an error naming the extension
// when no decoder handles it.
func (r *Registry) Get(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	d, ok := r.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", ext)
	}
	return d, nil
}

// DefaultRegistry returns a registry with all built-in decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CSVDecoder{})
	r.Register(XLSXDecoder{})
	return r
}

// CSVDecoder passes CSV text through unchanged; the codec handles the
// dialect itself.
type CSVDecoder struct{}

// Extensions returns the file extensions handled by the decoder.
func (CSVDecoder) Extensions() []string { return []string{".csv"} }

// Decode reads the file as UTF-8 text.
func (CSVDecoder) Decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}
