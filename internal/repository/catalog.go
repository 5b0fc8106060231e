package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

var ErrEmptyCatalog = errors.New("catalog has no roots")

// CatalogRepository provides read-only access to the word root catalog.
// The catalog is loaded once and never mutated.
type CatalogRepository struct {
	roots []*entities.Root
	byID  map[int]*entities.Root
}

// NewCatalogRepository loads the catalog from a .json or .xlsx file.
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	var (
		roots []*entities.Root
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		roots, err = loadXLSX(DefaultXLSXLayout(path))
	default:
		roots, err = loadJSON(path)
	}
	if err != nil {
		return nil, err
	}

	return NewCatalogFromRoots(roots)
}

// NewCatalogFromRoots builds a catalog from already loaded roots.
// Roots are validated and ordered by id.
func NewCatalogFromRoots(roots []*entities.Root) (*CatalogRepository, error) {
	if len(roots) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[int]*entities.Root, len(roots))
	for _, r := range roots {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("root %d (%s): %w", r.ID, r.Root, err)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate root id %d", r.ID)
		}
		byID[r.ID] = r
	}

	sorted := make([]*entities.Root, len(roots))
	copy(sorted, roots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &CatalogRepository{roots: sorted, byID: byID}, nil
}

// GetAll returns all roots ordered by id.
func (r *CatalogRepository) GetAll() []*entities.Root {
	return r.roots
}

// GetByID returns the root with the given id.
func (r *CatalogRepository) GetByID(id int) (*entities.Root, error) {
	root, ok := r.byID[id]
	if !ok {
		return nil, &entities.NotFoundError{Kind: "root", ID: id}
	}
	return root, nil
}

// Len returns the catalog size.
func (r *CatalogRepository) Len() int {
	return len(r.roots)
}

func loadJSON(path string) ([]*entities.Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var wrapper struct {
		Roots []*entities.Root `json:"roots"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roots JSON: %w", err)
	}

	return wrapper.Roots, nil
}
