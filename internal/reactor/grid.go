package reactor

import (
	"math/rand"

	"lambdasoup/internal/analysis"
	"lambdasoup/internal/arena"
	"lambdasoup/internal/eval"
	"lambdasoup/internal/generator"
)

// Cell is one grid position, per spec §3's Cell record. cachedHash and
// cachedMass are invalidated (cacheValid=false) on any state change and
// recomputed lazily by the analyser's caller.
type Cell struct {
	Atom       arena.Index
	Occupied   bool
	Age        int
	Generation int

	cachedHash  uint64
	cachedMass  int
	cacheValid  bool
}

func (c *Cell) invalidate() { c.cacheValid = false }

// hash returns the cell's cached structural hash (analysis.Hash), computing
// and caching it on first access after any state change invalidated it.
func (c *Cell) hash(ar *arena.Arena) uint64 {
	if !c.cacheValid {
		c.cachedHash = analysis.Hash(ar, c.Atom)
		c.cachedMass = analysis.Mass(ar, c.Atom)
		c.cacheValid = true
	}
	return c.cachedHash
}

// mass returns the cell's cached mass, computing and caching it on first
// access after any state change invalidated it.
func (c *Cell) mass(ar *arena.Arena) int {
	if !c.cacheValid {
		c.cachedHash = analysis.Hash(ar, c.Atom)
		c.cachedMass = analysis.Mass(ar, c.Atom)
		c.cacheValid = true
	}
	return c.cachedMass
}

// GridConfig is the tunable set spec §6 names for the grid reactor.
type GridConfig struct {
	Width, Height int
	Depth         int
	Steps         int
	MaxMass       int
	DensityPct    int
	MaxAge        int
	CosmicRayRate float64 // spawns per 100,000 empty-cell-steps

	GCInterval          int
	CompactionThreshold int
	CompactionEvery     int
}

func (c GridConfig) gcInterval() int {
	if c.GCInterval <= 0 {
		return 10
	}
	return c.GCInterval
}

func (c GridConfig) compactionEvery() int {
	if c.CompactionEvery <= 0 {
		return 100
	}
	return c.CompactionEvery
}

func (c GridConfig) compactionThreshold() int {
	if c.CompactionThreshold <= 0 {
		return 10_000
	}
	return c.CompactionThreshold
}

// Grid is the toroidal 2-D lattice reactor of spec §4.8.
type Grid struct {
	Arena   *arena.Arena
	Reducer *eval.Reducer
	Gen     *generator.Generator
	Rand    *rand.Rand
	Config  GridConfig

	Cells []Cell

	Steps             int
	ReactionsSuccess  int
	ReactionsDiverged int
	Movements         int
	DeathsAge         int
	CosmicSpawns      int
}

// NewGrid allocates a width*height grid and seeds densityPct of its cells
// (spec §4.8's "Seed"), retrying a generated combinator that turns out to
// be the pure identity.
func NewGrid(ar *arena.Arena, reducer *eval.Reducer, gen *generator.Generator, rng *rand.Rand, cfg GridConfig) *Grid {
	g := &Grid{Arena: ar, Reducer: reducer, Gen: gen, Rand: rng, Config: cfg}
	g.Cells = make([]Cell, cfg.Width*cfg.Height)
	for i := range g.Cells {
		g.Cells[i].Atom = arena.NoIndex
	}

	want := cfg.Width * cfg.Height * cfg.DensityPct / 100
	placed := 0
	for placed < want {
		idx := rng.Intn(len(g.Cells))
		if g.Cells[idx].Occupied {
			continue
		}
		g.Cells[idx] = Cell{Atom: gen.Generate(cfg.Depth), Occupied: true}
		placed++
	}
	return g
}

func (g *Grid) index(x, y int) int {
	x = ((x % g.Config.Width) + g.Config.Width) % g.Config.Width
	y = ((y % g.Config.Height) + g.Config.Height) % g.Config.Height
	return y*g.Config.Width + x
}

func (g *Grid) coords(idx int) (x, y int) {
	return idx % g.Config.Width, idx / g.Config.Width
}

var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Step runs one asynchronous grid update per spec §4.8: a Fisher-Yates
// shuffled permutation of cell indices is visited in order. An occupied
// cell only ages (and dies past MaxAge) this step; an empty cell rolls for
// a cosmic-ray spawn, and a freshly spawned atom immediately takes its one
// chance to move into, or react with, a random cardinal neighbour.
//
// A cell that is already occupied never reaches the movement/interaction
// step in the same pass it ages in — without that restriction a
// fully-occupied grid would react every cell against its (always occupied)
// neighbours every step, which a 100%-density all-identity grid makes
// observable as nonzero reactions_success; nothing ever reaches that count
// here, since age is the only thing that happens to an established
// occupant. roots is invoked only when a GC is due this step; compact is
// invoked only when compaction is due, and must perform the arena's
// Compact() itself (remapping every other external holder it owns, e.g. an
// engine's bindings map and gas pool) and return the resulting remap table,
// which Step then applies to its own cells. A nil compact skips compaction
// entirely even if the cadence/threshold would otherwise trigger it.
func (g *Grid) Step(roots func() []arena.Index, compact func() map[arena.Index]arena.Index) (collected, compacted bool) {
	perm := fisherYates(g.Rand, len(g.Cells))

	for _, idx := range perm {
		cell := &g.Cells[idx]

		if cell.Occupied {
			cell.Age++
			if cell.Age > g.Config.MaxAge {
				*cell = Cell{Atom: arena.NoIndex}
				g.DeathsAge++
			}
			continue
		}

		if g.Rand.Float64() >= g.Config.CosmicRayRate/100_000 {
			continue
		}
		cell.Atom = g.Gen.Generate(3)
		cell.Occupied = true
		cell.Age = 0
		cell.invalidate()
		g.CosmicSpawns++

		x, y := g.coords(idx)
		off := neighborOffsets[g.Rand.Intn(4)]
		tIdx := g.index(x+off[0], y+off[1])
		target := &g.Cells[tIdx]

		if !target.Occupied {
			*target = *cell
			*cell = Cell{Atom: arena.NoIndex}
			g.Movements++
			continue
		}

		app := g.Arena.NewApp(cell.Atom, target.Atom)
		result := g.Reducer.EvalBounded(app, g.Config.Steps, g.Config.MaxMass)
		switch result.Outcome {
		case eval.OutcomeDone:
			// A is a catalyst: it survives at idx with its age reset; t
			// becomes the reduced result (spec §4.8's Done case).
			cell.Age = 0
			cell.invalidate()
			*target = Cell{Atom: result.Value, Occupied: true, Age: 0, Generation: target.Generation + 1}
			g.ReactionsSuccess++
		default:
			// Limit or Error: t empties, but A still survives at idx.
			*target = Cell{Atom: arena.NoIndex}
			g.ReactionsDiverged++
		}
	}

	g.Steps++
	if g.Steps%g.Config.gcInterval() == 0 {
		g.Arena.Collect(roots())
		collected = true
	}
	if compact != nil && g.Steps%g.Config.compactionEvery() == 0 && g.Arena.SlotCount() > g.Config.compactionThreshold() {
		remap := compact()
		g.remapCells(remap)
		compacted = true
	}
	return collected, compacted
}

func (g *Grid) remapCells(remap map[arena.Index]arena.Index) {
	for i := range g.Cells {
		if !g.Cells[i].Occupied {
			continue
		}
		if ni, ok := arena.Remap(remap, g.Cells[i].Atom); ok {
			g.Cells[i].Atom = ni
		}
	}
}

// Roots returns every occupied cell's atom, the portion of the GC root set
// spec §4.3 assigns to the grid.
func (g *Grid) Roots() []arena.Index {
	var roots []arena.Index
	for i := range g.Cells {
		if g.Cells[i].Occupied {
			roots = append(roots, g.Cells[i].Atom)
		}
	}
	return roots
}

// Population counts occupied cells.
func (g *Grid) Population() int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Occupied {
			n++
		}
	}
	return n
}

// GridStatsRow is one row of the grid time-series log spec §6 names:
// `step,population,unique_species,reactions_success,reactions_diverged,
// movements,deaths_age,cosmic_spawns`.
type GridStatsRow struct {
	Step              int
	Population        int
	UniqueSpecies     int
	ReactionsSuccess  int
	ReactionsDiverged int
	Movements         int
	DeathsAge         int
	CosmicSpawns      int
}

// Snapshot computes the current GridStatsRow. Species identity here is the
// tag-insensitive structural Hash (analysis.Hash), matching the
// generation-tracking use spec §4.9 defines hash() for, as opposed to the
// gas reactor's tag-inclusive SpeciesKey (spec §4.7).
func (g *Grid) Snapshot() GridStatsRow {
	var hashes []uint64
	for i := range g.Cells {
		if g.Cells[i].Occupied {
			hashes = append(hashes, g.Cells[i].hash(g.Arena))
		}
	}
	hist := analysis.Histogram(hashes)
	return GridStatsRow{
		Step:              g.Steps,
		Population:        len(hashes),
		UniqueSpecies:     len(hist),
		ReactionsSuccess:  g.ReactionsSuccess,
		ReactionsDiverged: g.ReactionsDiverged,
		Movements:         g.Movements,
		DeathsAge:         g.DeathsAge,
		CosmicSpawns:      g.CosmicSpawns,
	}
}

// fisherYates returns a uniformly random permutation of [0,n) using rng,
// the asynchronous-update shuffle spec §4.8 requires.
func fisherYates(rng *rand.Rand, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
