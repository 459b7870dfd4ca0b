package config

import "context"

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads the model description at path and translates it into the
	// format-agnostic document.
	Load(ctx context.Context, path string) (*Document, error)
}

// Encoder renders a document back into a format-specific representation.
type Encoder interface {
	Encode(doc *Document) ([]byte, error)
}
