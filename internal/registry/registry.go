// Package registry maps mode ids to game factories. Modes register in
// init so commands can list and start them by id.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tileblast/internal/core"
)

// Game is one playable mode driven by the platform loop. Implementations
// know nothing about the terminal: the platform maps input into frames,
// calls Step at a fixed rate and hands Render a cleared screen.
type Game interface {
	// ID is the stable key used on the command line and in the score table.
	ID() string
	// Title is shown in menus.
	Title() string
	// Reset starts a fresh run sized and seeded from cfg.
	Reset(cfg core.RuntimeConfig)
	// Step consumes one tick of input.
	Step(in core.InputFrame) core.StepResult
	// Render draws into dst.
	Render(dst *core.Screen)
	// State reports the last known game state.
	State() core.GameState
}

// Resizer is implemented by games that keep their run across a resize.
type Resizer interface {
	Resize(w, h int)
}

// Tunable is implemented by games that offer difficulty presets.
// SetDifficulty takes effect on the next Reset.
type Tunable interface {
	SetDifficulty(name string) error
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry // sorted by id
)

func lookup(id string) (int, bool) {
	return slices.BinarySearchFunc(entries, id, func(e entry, id string) int {
		return strings.Compare(e.info.ID, id)
	})
}

// Register adds a mode. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	i, found := lookup(id)
	if found {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	info := GameInfo{ID: id, Title: f().Title()}
	entries = slices.Insert(entries, i, entry{info: info, factory: f})
}

// List returns every registered mode ordered by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Create returns a new instance of the mode with the given id.
func Create(id string) (Game, error) {
	mu.RLock()
	i, found := lookup(id)
	var f Factory
	if found {
		f = entries[i].factory
	}
	mu.RUnlock()

	if !found {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, found := lookup(id)
	return found
}
