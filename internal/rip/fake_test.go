package rip

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/handiism/th06rip/internal/thdat"
)

// fakeCatalog serves in-memory entries.
type fakeCatalog struct {
	order []string
	files map[string]string
	fail  map[string]error

	mu        sync.Mutex
	extracted []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{files: map[string]string{}, fail: map[string]error{}}
}

func (c *fakeCatalog) add(p, content string) *fakeCatalog {
	c.order = append(c.order, p)
	c.files[p] = content
	return c
}

func (c *fakeCatalog) Entries() []thdat.Entry {
	entries := make([]thdat.Entry, 0, len(c.order))
	for _, p := range c.order {
		n := int64(len(c.files[p]))
		entries = append(entries, thdat.Entry{Path: p, Size: n, StoredSize: n})
	}
	return entries
}

func (c *fakeCatalog) Extract(ctx context.Context, p, destDir string) error {
	content, ok := c.files[p]
	if !ok {
		return fmt.Errorf("%w: %s", thdat.ErrNotFound, p)
	}
	if err := c.fail[p]; err != nil {
		return err
	}

	c.mu.Lock()
	c.extracted = append(c.extracted, p)
	c.mu.Unlock()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(destDir, path.Base(p)), []byte(content), 0o644)
}

func (c *fakeCatalog) extractCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.extracted)
}

func (c *fakeCatalog) opener() CatalogOpener {
	return func(context.Context, string) (thdat.Catalog, error) {
		return c, nil
	}
}
