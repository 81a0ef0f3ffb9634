package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/normalisers/docx"
	"github.com/custodia-labs/storycsv/internal/normalisers/html"
	"github.com/custodia-labs/storycsv/internal/normalisers/markdown"
	"github.com/custodia-labs/storycsv/internal/normalisers/pdf"
	"github.com/custodia-labs/storycsv/internal/normalisers/plaintext"
)

// FallbackMIMEType is used for files whose extension is not recognised.
const FallbackMIMEType = "text/plain"

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

var extensionTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".htm":      "text/html",
	".html":     "text/html",
	".xhtml":    "application/xhtml+xml",
	".docx":     docx.MIMEType,
	".pdf":      "application/pdf",
}

// MIMETypeForPath guesses a manuscript's MIME type from its extension.
// Unknown extensions are treated as plain text.
func MIMETypeForPath(path string) string {
	if mime, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return FallbackMIMEType
}

// Registry dispatches raw documents to the highest priority normaliser
// that supports their MIME type.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers all built-in normalisers with the registry.
func RegisterDefaults(r driven.NormaliserRegistry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(pdf.New())
}

// Register adds a normaliser. Normalisers are kept sorted by descending
// priority; equal priorities keep registration order.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Normalise transforms raw with the best matching normaliser. An empty
// MIME type is guessed from the URI.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	mime := raw.MIMEType
	if mime == "" {
		mime = MIMETypeForPath(raw.URI)
		raw.MIMEType = mime
	}

	n := r.find(mime)
	if n == nil {
		return nil, fmt.Errorf("%s (%s): %w", raw.URI, mime, domain.ErrUnsupportedType)
	}
	return n.Normalise(ctx, raw)
}

// SupportedMIMETypes returns every MIME type some normaliser accepts.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var types []string
	for _, n := range r.normalisers {
		for _, mime := range n.SupportedMIMETypes() {
			if !seen[mime] {
				seen[mime] = true
				types = append(types, mime)
			}
		}
	}
	sort.Strings(types)
	return types
}

func (r *Registry) find(mime string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.normalisers {
		for _, supported := range n.SupportedMIMETypes() {
			if supported == mime {
				return n
			}
		}
	}
	return nil
}
