package catalog

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/footyguess/gameserver/models"
)

// Footballers is the read-only candidate catalog. Lookups are served
// from an in-memory index; contents never change after construction.
type Footballers struct {
	byID  map[string]models.Footballer
	order []string
	rng   *rand.Rand
	mutex sync.Mutex // guards rng
}

func NewFootballers(entries []models.Footballer) *Footballers {
	c := &Footballers{
		byID: make(map[string]models.Footballer, len(entries)),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, f := range entries {
		if _, dup := c.byID[f.ID]; dup {
			continue
		}
		c.byID[f.ID] = f
		c.order = append(c.order, f.ID)
	}
	return c
}

// GetByIDs resolves every requested ID or fails. Results follow the
// request order.
func (c *Footballers) GetByIDs(ids []string) ([]models.Footballer, error) {
	out := make([]models.Footballer, 0, len(ids))
	for _, id := range ids {
		f, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("footballer %s not in catalog", id)
		}
		out = append(out, f)
	}
	return out, nil
}

// GetRandom draws n distinct footballers, or the whole catalog when n
// exceeds its size.
func (c *Footballers) GetRandom(n int) ([]models.Footballer, error) {
	if len(c.order) == 0 {
		return nil, fmt.Errorf("footballer catalog is empty")
	}
	if n > len(c.order) {
		n = len(c.order)
	}

	c.mutex.Lock()
	perm := c.rng.Perm(len(c.order))
	c.mutex.Unlock()

	out := make([]models.Footballer, 0, n)
	for _, i := range perm[:n] {
		out = append(out, c.byID[c.order[i]])
	}
	return out, nil
}

// GetAll returns the catalog in insertion order.
func (c *Footballers) GetAll() []models.Footballer {
	out := make([]models.Footballer, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Footballers) Len() int { return len(c.order) }

// Questions is the read-only question catalog.
type Questions struct {
	byID  map[string]models.Question
	order []string
}

func NewQuestions(entries []models.Question) *Questions {
	c := &Questions{byID: make(map[string]models.Question, len(entries))}
	for _, q := range entries {
		if _, dup := c.byID[q.ID]; dup {
			continue
		}
		c.byID[q.ID] = q
		c.order = append(c.order, q.ID)
	}
	return c
}

func (c *Questions) GetByID(id string) (models.Question, error) {
	q, ok := c.byID[id]
	if !ok {
		return models.Question{}, fmt.Errorf("question %s not in catalog", id)
	}
	return q, nil
}

func (c *Questions) GetAll() ([]models.Question, error) {
	out := make([]models.Question, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (c *Questions) Len() int { return len(c.order) }
