package service

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// RootService provides catalog browsing: listing, lookup and search.
type RootService struct {
	catalog RootRepository
}

// NewRootService creates a RootService.
func NewRootService(catalog RootRepository) *RootService {
	return &RootService{
		catalog: catalog,
	}
}

// All returns every root in catalog order.
func (s *RootService) All() []*entities.Root {
	return s.catalog.GetAll()
}

// GetByID returns a root or a NotFoundError.
func (s *RootService) GetByID(id int) (*entities.Root, error) {
	return s.catalog.GetByID(id)
}

// Filter returns the roots of the given kind whose root, meanings, example
// words or example meanings contain query, ignoring case. An empty kind
// matches every kind and an empty query matches every root.
func (s *RootService) Filter(kind entities.RootKind, query string) []*entities.Root {
	// A Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	var out []*entities.Root
	for _, r := range s.catalog.GetAll() {
		if kind != "" && r.Kind() != kind {
			continue
		}
		if q != "" && !matches(fold, r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(fold cases.Caser, r *entities.Root, q string) bool {
	fields := []string{r.Root, r.Meaning, r.MeaningEn}
	for _, ex := range r.Examples {
		fields = append(fields, ex.Word, ex.Meaning)
	}

	for _, f := range fields {
		if strings.Contains(fold.String(f), q) {
			return true
		}
	}
	return false
}

// ParseKind converts user input to a RootKind. It reports false for
// anything that is not a known kind.
func ParseKind(s string) (entities.RootKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix", "prefixes":
		return entities.KindPrefix, true
	case "suffix", "suffixes":
		return entities.KindSuffix, true
	case "root", "roots":
		return entities.KindRoot, true
	}
	return "", false
}
