// Package catalog holds the process-wide, read-only coordinate catalog and
// template cache. Both are populated once at startup and never mutated, so
// any number of concurrent requests may read them without locking.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync/atomic"

	"docustamp/contract-portal-backend/internal/stamp"
	"docustamp/contract-portal-backend/pkg/storage"
)

const (
	coordinatesKey = "coordinates.json"
	templatePrefix = "templates/"
)

// ErrNotReady is returned while the catalog has not been loaded. It is
// distinct from the not-found errors: a degraded server answers "not
// configured", not "unknown template".
var ErrNotReady = errors.New("catalog not loaded")

// Catalog maps template names to coordinate specs and raw template PDFs.
type Catalog struct {
	ready     atomic.Bool
	specs     map[string]stamp.CoordinateSpec
	templates map[string][]byte
}

func New() *Catalog {
	return &Catalog{}
}

// Load populates the catalog from the blob store: the coordinate file plus
// every PDF under the template prefix, keyed by basename without the
// extension. On failure the catalog stays not-ready and the process keeps
// running degraded.
func (c *Catalog) Load(ctx context.Context, store storage.BlobStore) error {
	raw, err := store.Download(ctx, coordinatesKey)
	if err != nil {
		return fmt.Errorf("catalog: downloading %s: %w", coordinatesKey, err)
	}
	specs := make(map[string]stamp.CoordinateSpec)
	if err := json.Unmarshal(raw, &specs); err != nil {
		return fmt.Errorf("catalog: parsing %s: %w", coordinatesKey, err)
	}

	keys, err := store.List(ctx, templatePrefix)
	if err != nil {
		return fmt.Errorf("catalog: listing templates: %w", err)
	}
	templates := make(map[string][]byte)
	for _, key := range keys {
		if !strings.HasSuffix(strings.ToLower(key), ".pdf") {
			continue
		}
		data, err := store.Download(ctx, key)
		if err != nil {
			return fmt.Errorf("catalog: downloading template %s: %w", key, err)
		}
		name := strings.TrimSuffix(path.Base(key), path.Ext(key))
		templates[name] = data
		slog.Info("cached template", "key", key, "name", name, "bytes", len(data))
	}

	c.specs = specs
	c.templates = templates
	c.ready.Store(true)
	slog.Info("catalog loaded", "specs", len(specs), "templates", len(templates))
	return nil
}

// Ready reports whether startup loading completed.
func (c *Catalog) Ready() bool {
	return c.ready.Load()
}

// CoordinateSpec implements stamp.SpecSource.
func (c *Catalog) CoordinateSpec(templateName string) (stamp.CoordinateSpec, error) {
	if !c.Ready() {
		return stamp.CoordinateSpec{}, ErrNotReady
	}
	spec, ok := c.specs[templateName]
	if !ok {
		return stamp.CoordinateSpec{}, fmt.Errorf("%w: %q", stamp.ErrSpecNotFound, templateName)
	}
	return spec, nil
}

// Template returns the raw PDF bytes for a template name.
func (c *Catalog) Template(templateName string) ([]byte, error) {
	if !c.Ready() {
		return nil, ErrNotReady
	}
	data, ok := c.templates[templateName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", stamp.ErrTemplateNotFound, templateName)
	}
	return data, nil
}

// Names returns the loaded template names.
func (c *Catalog) Names() []string {
	if !c.Ready() {
		return nil
	}
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	return names
}
