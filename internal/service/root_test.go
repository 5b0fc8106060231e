package service

import (
	"testing"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

func browseCatalog() *testCatalog {
	return &testCatalog{roots: []*entities.Root{
		{ID: 1, Root: "spect", Meaning: "to look", Examples: []entities.Example{{Word: "Inspect", Meaning: "to look closely"}}},
		{ID: 2, Root: "re-", Meaning: "again", MeaningEn: "back", Examples: []entities.Example{{Word: "rewrite", Meaning: "write again"}}},
		{ID: 3, Root: "-able", Meaning: "can be done", Examples: []entities.Example{{Word: "readable", Meaning: "can be read"}}},
		{ID: 4, Root: "port", Meaning: "to carry", Examples: []entities.Example{{Word: "transport", Meaning: "carry across"}}},
	}}
}

func TestFilter(t *testing.T) {
	svc := NewRootService(browseCatalog())

	tests := []struct {
		name  string
		kind  entities.RootKind
		query string
		want  []int
	}{
		{"all", "", "", []int{1, 2, 3, 4}},
		{"prefixes", entities.KindPrefix, "", []int{2}},
		{"suffixes", entities.KindSuffix, "", []int{3}},
		{"roots", entities.KindRoot, "", []int{1, 4}},
		{"case insensitive example word", "", "INSPECT", []int{1}},
		{"english meaning", "", "back", []int{2}},
		{"example meaning", "", "carry across", []int{4}},
		{"kind and query", entities.KindRoot, "again", nil},
		{"no match", "", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Filter(tt.kind, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d roots", tt.want, len(got))
			}
			for i, r := range got {
				if r.ID != tt.want[i] {
					t.Fatalf("expected %v, got root %d at %d", tt.want, r.ID, i)
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]entities.RootKind{
		"prefix":   entities.KindPrefix,
		"Suffixes": entities.KindSuffix,
		" root ":   entities.KindRoot,
	}
	for in, want := range tests {
		got, ok := ParseKind(in)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = %q %v, want %q", in, got, ok, want)
		}
	}

	if _, ok := ParseKind("verb"); ok {
		t.Fatalf("expected unknown kind")
	}
}

func TestGetByID(t *testing.T) {
	svc := NewRootService(browseCatalog())

	r, err := svc.GetByID(4)
	if err != nil || r.Root != "port" {
		t.Fatalf("expected port, got %v %v", r, err)
	}
	if _, err := svc.GetByID(99); !entities.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
