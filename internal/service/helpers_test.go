package service

import (
	"fmt"
	"time"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

type testCatalog struct {
	roots []*entities.Root
}

func newTestCatalog(n int) *testCatalog {
	roots := make([]*entities.Root, 0, n)
	for i := 1; i <= n; i++ {
		roots = append(roots, &entities.Root{
			ID:      i,
			Root:    fmt.Sprintf("root%d", i),
			Meaning: fmt.Sprintf("meaning %d", i),
			Examples: []entities.Example{
				{
					Word:        fmt.Sprintf("word%da", i),
					Meaning:     fmt.Sprintf("word %d a meaning", i),
					Explanation: fmt.Sprintf("root%d + a", i),
				},
				{
					Word:        fmt.Sprintf("word%db", i),
					Meaning:     fmt.Sprintf("word %d b meaning", i),
					Explanation: fmt.Sprintf("root%d + b", i),
				},
			},
			Quiz: &entities.Quiz{
				Question:      fmt.Sprintf("What does root%d mean?", i),
				Options:       []string{"wrong", fmt.Sprintf("meaning %d", i), "other"},
				CorrectAnswer: 1,
			},
		})
	}
	return &testCatalog{roots: roots}
}

func (c *testCatalog) GetAll() []*entities.Root { return c.roots }

func (c *testCatalog) GetByID(id int) (*entities.Root, error) {
	for _, r := range c.roots {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, &entities.NotFoundError{Kind: "root", ID: id}
}

func (c *testCatalog) Len() int { return len(c.roots) }

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Add(d time.Duration) { c.t = c.t.Add(d) }
