package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// XLSXLayout describes where catalog fields live in a workbook.
type XLSXLayout struct {
	FilePath string

	RootsSheet         string
	IDColumn           string
	RootColumn         string
	OriginColumn       string
	MeaningColumn      string
	MeaningEnColumn    string
	DescriptionColumn  string
	QuizQuestionColumn string
	QuizOptionsColumn  string // options separated by "|"
	QuizCorrectColumn  string // zero-based index of the correct option

	ExamplesSheet            string
	ExampleRootIDColumn      string
	ExampleWordColumn        string
	ExamplePrefixColumn      string
	ExampleRootPartColumn    string
	ExampleSuffixColumn      string
	ExampleMeaningColumn     string
	ExampleExplanationColumn string

	StartRow int // first data row, 1-based
}

// DefaultXLSXLayout returns the default workbook layout.
func DefaultXLSXLayout(path string) XLSXLayout {
	return XLSXLayout{
		FilePath: path,

		RootsSheet:         "Roots",
		IDColumn:           "A",
		RootColumn:         "B",
		OriginColumn:       "C",
		MeaningColumn:      "D",
		MeaningEnColumn:    "E",
		DescriptionColumn:  "F",
		QuizQuestionColumn: "G",
		QuizOptionsColumn:  "H",
		QuizCorrectColumn:  "I",

		ExamplesSheet:            "Examples",
		ExampleRootIDColumn:      "A",
		ExampleWordColumn:        "B",
		ExamplePrefixColumn:      "C",
		ExampleRootPartColumn:    "D",
		ExampleSuffixColumn:      "E",
		ExampleMeaningColumn:     "F",
		ExampleExplanationColumn: "G",

		StartRow: 2, // skip header
	}
}

func loadXLSX(layout XLSXLayout) ([]*entities.Root, error) {
	f, err := excelize.OpenFile(layout.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, layout)
}

func readWorkbook(f *excelize.File, layout XLSXLayout) ([]*entities.Root, error) {
	rootRows, err := f.GetRows(layout.RootsSheet)
	if err != nil {
		return nil, fmt.Errorf("get rows of %q: %w", layout.RootsSheet, err)
	}

	var roots []*entities.Root
	byID := make(map[int]*entities.Root)

	for i, row := range rootRows {
		if i < layout.StartRow-1 || isBlank(row) {
			continue
		}

		root, err := parseRootRow(row, layout)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", layout.RootsSheet, i+1, err)
		}
		roots = append(roots, root)
		byID[root.ID] = root
	}

	exampleRows, err := f.GetRows(layout.ExamplesSheet)
	if err != nil {
		return nil, fmt.Errorf("get rows of %q: %w", layout.ExamplesSheet, err)
	}

	for i, row := range exampleRows {
		if i < layout.StartRow-1 || isBlank(row) {
			continue
		}

		id, err := strconv.Atoi(cell(row, layout.ExampleRootIDColumn))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid root id: %w", layout.ExamplesSheet, i+1, err)
		}
		root, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown root id %d", layout.ExamplesSheet, i+1, id)
		}

		root.Examples = append(root.Examples, entities.Example{
			Word: cell(row, layout.ExampleWordColumn),
			Breakdown: entities.Breakdown{
				Prefix: cell(row, layout.ExamplePrefixColumn),
				Root:   cell(row, layout.ExampleRootPartColumn),
				Suffix: cell(row, layout.ExampleSuffixColumn),
			},
			Meaning:     cell(row, layout.ExampleMeaningColumn),
			Explanation: cell(row, layout.ExampleExplanationColumn),
		})
	}

	return roots, nil
}

func parseRootRow(row []string, layout XLSXLayout) (*entities.Root, error) {
	id, err := strconv.Atoi(cell(row, layout.IDColumn))
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}

	root := &entities.Root{
		ID:          id,
		Root:        cell(row, layout.RootColumn),
		Origin:      cell(row, layout.OriginColumn),
		Meaning:     cell(row, layout.MeaningColumn),
		MeaningEn:   cell(row, layout.MeaningEnColumn),
		Description: cell(row, layout.DescriptionColumn),
	}

	question := cell(row, layout.QuizQuestionColumn)
	if question == "" {
		return root, nil
	}

	var options []string
	for _, opt := range strings.Split(cell(row, layout.QuizOptionsColumn), "|") {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}

	correct, err := strconv.Atoi(cell(row, layout.QuizCorrectColumn))
	if err != nil {
		return nil, fmt.Errorf("invalid quiz answer index: %w", err)
	}

	root.Quiz = &entities.Quiz{
		Question:      question,
		Options:       options,
		CorrectAnswer: correct,
	}

	return root, nil
}

// cell returns the trimmed value of the named column, or "" when the row is shorter.
func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	n, err := excelize.ColumnNameToNumber(column)
	if err != nil || n-1 >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[n-1])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
