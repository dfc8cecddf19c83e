// Package prompt selects reference texts by difficulty level.
package prompt

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/typeracer/internal/model"
)

// ErrEmptyPool is returned when the default level has no prompts.
var ErrEmptyPool = errors.New("default level prompt pool is empty")

// DefaultPools returns the built-in prompt table.
func DefaultPools() map[model.Level][]string {
	return map[model.Level][]string{
		model.LevelEasy: {
			"The sun is bright today.",
			"I like to cook pasta.",
			"A dog ran down the road.",
		},
		model.LevelMedium: {
			"Typing quickly requires practice, focus, and good posture.",
			"Please bring apples, bananas, and grapes to the picnic.",
			"There are seven continents on Earth, each unique.",
		},
		model.LevelHard: {
			"She whispered, 'Meet at 7:45—don't be late!' before leaving.",
			"A curious fox jumps over 13 lazy dogs, twice.",
			"Optimizing code requires patience, profiling, and precise refactoring.",
		},
	}
}

// Bank holds prompt pools and picks one prompt per request. It is safe for
// concurrent use.
type Bank struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	pools map[model.Level][]string
}

// Option configures a Bank.
type Option func(*Bank)

// WithSeed makes selection deterministic.
func WithSeed(seed int64) Option {
	return func(b *Bank) {
		b.rnd = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for selection.
func WithRand(rnd *rand.Rand) Option {
	return func(b *Bank) {
		if rnd != nil {
			b.rnd = rnd
		}
	}
}

// NewBank copies pools into a Bank seeded with the current time.
func NewBank(pools map[model.Level][]string, opts ...Option) (*Bank, error) {
	b := &Bank{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		pools: map[model.Level][]string{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Merge(pools)
	if len(b.pools[model.DefaultLevel]) == 0 {
		return nil, ErrEmptyPool
	}
	return b, nil
}

// Merge appends prompts to the bank. Blank prompts are skipped.
func (b *Bank) Merge(pools map[model.Level][]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for level, prompts := range pools {
		cleaned := cleanPrompts(prompts)
		if len(cleaned) == 0 {
			continue
		}
		b.pools[level] = lo.Uniq(append(b.pools[level], cleaned...))
	}
}

// Resolve returns the level whose pool serves requests for level.
func (b *Bank) Resolve(level model.Level) model.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resolve(level)
}

func (b *Bank) resolve(level model.Level) model.Level {
	if len(b.pools[level]) > 0 {
		return level
	}
	return model.DefaultLevel
}

// Select picks a prompt uniformly from the pool for level, falling back to
// the default level pool.
func (b *Bank) Select(level model.Level) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	pool := b.pools[b.resolve(level)]
	return pool[int(b.rnd.Float64()*float64(len(pool)))]
}

// SelectRaw parses a raw control value and selects a prompt for it.
func (b *Bank) SelectRaw(raw string) string {
	return b.Select(model.ParseLevel(raw))
}

// Levels returns the configured levels in ascending order.
func (b *Bank) Levels() []model.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	levels := lo.Keys(b.pools)
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

// Pool returns a copy of the pool configured for level.
func (b *Bank) Pool(level model.Level) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.pools[level]...)
}

// Contains reports whether text is a member of the pool for level.
func (b *Bank) Contains(level model.Level, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return lo.Contains(b.pools[level], text)
}

func cleanPrompts(prompts []string) []string {
	return lo.FilterMap(prompts, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
}
