package board

// Arena owns tile storage. Tiles live in fixed slots addressed by TileID;
// released slots go back to a free list and get a new generation so stale
// ids stop resolving.
type Arena struct {
	slots []*arenaSlot
	free  []uint32
	live  int
}

type arenaSlot struct {
	tile Tile
	gen  uint32
	used bool
}

// NewArena creates an arena with the given initial capacity.
func NewArena(capacity int) *Arena {
	if capacity < 1 {
		capacity = 1
	}
	a := &Arena{
		slots: make([]*arenaSlot, 0, capacity),
		free:  make([]uint32, 0, capacity),
	}
	a.grow(capacity)
	return a
}

// grow appends n empty slots to the free list.
func (a *Arena) grow(n int) {
	for range n {
		idx := uint32(len(a.slots))
		a.slots = append(a.slots, &arenaSlot{})
		a.free = append(a.free, idx)
	}
}

// Alloc stores a copy of t in a free slot and returns the live tile.
// The arena grows when it runs out of slots.
func (a *Arena) Alloc(t Tile) *Tile {
	if len(a.free) == 0 {
		a.grow(len(a.slots))
	}
	// Pop from the front so slot reuse is spread across the arena.
	idx := a.free[0]
	a.free = a.free[1:]

	s := a.slots[idx]
	s.gen++
	s.used = true
	t.ID = TileID{slot: idx, gen: s.gen}
	s.tile = t
	a.live++
	return &s.tile
}

// Get returns the live tile for id, or nil if the id is stale or unknown.
func (a *Arena) Get(id TileID) *Tile {
	if !id.Valid() || int(id.slot) >= len(a.slots) {
		return nil
	}
	s := a.slots[id.slot]
	if !s.used || s.gen != id.gen {
		return nil
	}
	return &s.tile
}

// Release returns the slot of id to the free list.
// Releasing a stale id is a no-op and returns false.
func (a *Arena) Release(id TileID) bool {
	if a.Get(id) == nil {
		return false
	}
	s := a.slots[id.slot]
	s.used = false
	s.tile = Tile{}
	a.free = append(a.free, id.slot)
	a.live--
	return true
}

// Live returns the number of allocated tiles.
func (a *Arena) Live() int {
	return a.live
}

// Cap returns the number of slots, used or free.
func (a *Arena) Cap() int {
	return len(a.slots)
}
