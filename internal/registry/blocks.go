// Package registry is the block catalogue: the physical parameters of every
// placeable block type. The simulation consumes half extents, mass, and
// friction from here; it never mutates the table.
package registry

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockDefinition defines the physical properties of a block type.
type BlockDefinition struct {
	Name        string
	HalfExtents mgl32.Vec3
	Mass        float32
	Friction    float32
	Color       uint32 // 0xRRGGBB, for the rendering collaborator
}

var (
	mu     sync.RWMutex
	blocks = make(map[string]*BlockDefinition)
)

// Register adds a block definition to the catalogue, replacing any previous
// definition with the same name.
func Register(def *BlockDefinition) {
	mu.Lock()
	defer mu.Unlock()
	blocks[def.Name] = def
}

// Get looks up a block definition by name.
func Get(name string) (*BlockDefinition, bool) {
	mu.RLock()
	defer mu.RUnlock()
	def, ok := blocks[name]
	return def, ok
}

// Names returns the registered block names, sorted for deterministic
// iteration.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	// Stock palette. Extents are sized against the 5-unit placement grid.
	Register(&BlockDefinition{
		Name:        "crate",
		HalfExtents: mgl32.Vec3{2.5, 2.5, 2.5},
		Mass:        1.0,
		Friction:    0.8,
		Color:       0xC08040,
	})
	Register(&BlockDefinition{
		Name:        "slab",
		HalfExtents: mgl32.Vec3{5, 1.25, 5},
		Mass:        1.5,
		Friction:    0.9,
		Color:       0x909090,
	})
	Register(&BlockDefinition{
		Name:        "beam",
		HalfExtents: mgl32.Vec3{7.5, 1.25, 1.25},
		Mass:        0.8,
		Friction:    0.7,
		Color:       0xA0722D,
	})
	Register(&BlockDefinition{
		Name:        "pillar",
		HalfExtents: mgl32.Vec3{1.25, 5, 1.25},
		Mass:        0.9,
		Friction:    0.85,
		Color:       0xD8D0C0,
	})
}
