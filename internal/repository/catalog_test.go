package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

const testCatalogJSON = `{
  "roots": [
    {
      "id": 2,
      "root": "port",
      "meaning": "to carry",
      "examples": [{"word": "export", "breakdown": {"prefix": "ex-", "root": "port"}, "meaning": "to send out", "explanation": "ex + port"}]
    },
    {
      "id": 1,
      "root": "spect",
      "meaning": "to look",
      "examples": [{"word": "inspect", "breakdown": {"prefix": "in-", "root": "spect"}, "meaning": "to look closely", "explanation": "in + spect"}],
      "quiz": {"question": "spect means?", "options": ["to look", "to carry"], "correctAnswer": 0}
    }
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewCatalogRepositoryJSON(t *testing.T) {
	repo, err := NewCatalogRepository(writeFile(t, "roots.json", testCatalogJSON))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	all := repo.GetAll()
	if repo.Len() != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Fatalf("expected roots ordered by id, got %d roots", repo.Len())
	}

	r, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if r.Quiz == nil || r.Quiz.Options[r.Quiz.CorrectAnswer] != "to look" {
		t.Fatalf("unexpected quiz %+v", r.Quiz)
	}
	if r.Examples[0].Breakdown.Prefix != "in-" {
		t.Fatalf("unexpected breakdown %+v", r.Examples[0].Breakdown)
	}

	if _, err := repo.GetByID(3); !entities.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewCatalogRepositoryErrors(t *testing.T) {
	if _, err := NewCatalogRepository(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	if _, err := NewCatalogRepository(writeFile(t, "empty.json", `{"roots": []}`)); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}

	dup := `{"roots": [
		{"id": 1, "root": "a", "examples": [{"word": "ab", "meaning": "x"}]},
		{"id": 1, "root": "b", "examples": [{"word": "bc", "meaning": "y"}]}
	]}`
	if _, err := NewCatalogRepository(writeFile(t, "dup.json", dup)); err == nil {
		t.Fatalf("expected error for duplicate ids")
	}

	badQuiz := `{"roots": [
		{"id": 1, "root": "a", "examples": [{"word": "ab", "meaning": "x"}], "quiz": {"question": "?", "options": ["x", "y"], "correctAnswer": 5}}
	]}`
	if _, err := NewCatalogRepository(writeFile(t, "quiz.json", badQuiz)); !entities.IsValidation(err) {
		t.Fatalf("expected validation error for quiz index, got %v", err)
	}

	noMeaning := `{"roots": [
		{"id": 1, "root": "a", "examples": [{"word": "ab", "meaning": " "}]}
	]}`
	_, err := NewCatalogRepository(writeFile(t, "meaning.json", noMeaning))
	var ve *entities.ValidationError
	if !errors.As(err, &ve) || ve.Field != "examples.meaning" {
		t.Fatalf("expected validation error for empty example meaning, got %v", err)
	}
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	layout := DefaultXLSXLayout("")
	for _, sheet := range []string{layout.RootsSheet, layout.ExamplesSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}

	rootRows := [][]any{
		{"id", "root", "origin", "meaning", "meaningEn", "description", "question", "options", "correct"},
		{"1", "re-", "Latin", "again", "again, back", "Repeats an action", "re- means?", "again | before | not", "0"},
		{"2", "-less", "Old English", "without", "", "", "", "", ""},
	}
	for i, row := range rootRows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(layout.RootsSheet, cellName, &row); err != nil {
			t.Fatalf("set roots row: %v", err)
		}
	}

	exampleRows := [][]any{
		{"root id", "word", "prefix", "root", "suffix", "meaning", "explanation"},
		{"1", "rewrite", "re-", "write", "", "to write again", "re + write"},
		{"2", "homeless", "", "home", "-less", "without a home", "home + less"},
		{"1", "return", "re-", "turn", "", "to come back", "re + turn"},
	}
	for i, row := range exampleRows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(layout.ExamplesSheet, cellName, &row); err != nil {
			t.Fatalf("set examples row: %v", err)
		}
	}

	roots, err := readWorkbook(f, layout)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	re := roots[0]
	if re.Kind() != entities.KindPrefix || len(re.Examples) != 2 {
		t.Fatalf("unexpected first root %+v", re)
	}
	if re.Quiz == nil || len(re.Quiz.Options) != 3 || re.Quiz.Options[1] != "before" {
		t.Fatalf("unexpected quiz %+v", re.Quiz)
	}

	less := roots[1]
	if less.Quiz != nil || less.Examples[0].Breakdown.Suffix != "-less" {
		t.Fatalf("unexpected second root %+v", less)
	}

	repo, err := NewCatalogFromRoots(roots)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected 2 roots in catalog, got %d", repo.Len())
	}
}

func TestNewCatalogRepositoryXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roots.xlsx")
	layout := DefaultXLSXLayout(path)

	f := excelize.NewFile()
	for _, sheet := range []string{layout.RootsSheet, layout.ExamplesSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	_ = f.SetCellValue(layout.RootsSheet, "A2", "1")
	_ = f.SetCellValue(layout.RootsSheet, "B2", "spect")
	_ = f.SetCellValue(layout.RootsSheet, "D2", "to look")
	_ = f.SetCellValue(layout.ExamplesSheet, "A2", "1")
	_ = f.SetCellValue(layout.ExamplesSheet, "B2", "inspect")
	_ = f.SetCellValue(layout.ExamplesSheet, "F2", "to look closely")

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	repo, err := NewCatalogRepository(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	r, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if r.Root != "spect" || r.Examples[0].Word != "inspect" {
		t.Fatalf("unexpected root %+v", r)
	}
}
