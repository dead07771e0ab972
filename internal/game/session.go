// Package game hosts the placement flow: it glues the pick-ray resolver, the
// validity queries, and the simulation world into one session with an
// explicit command surface. Commands arrive as plain method calls; the caller
// (demo script or websocket server) owns the single goroutine that drives
// them.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blockstack/internal/config"
	"blockstack/internal/geom"
	"blockstack/internal/physics"
	"blockstack/internal/placement"
	"blockstack/internal/profiling"
	"blockstack/internal/registry"
	"blockstack/internal/sim"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNoSelection      = errors.New("no block type selected")
	ErrNoCandidate      = errors.New("no placement candidate")
	ErrInvalidPlacement = errors.New("placement overlaps an existing block")
	ErrUnsupported      = errors.New("placement has no support")
)

// Preview is the current not-yet-confirmed placement, recomputed on every
// PointAt call and exposed to the renderer.
type Preview struct {
	Candidate placement.Candidate
	Center    mgl32.Vec3 // box center if confirmed
	Valid     bool
}

// Session is the host-side stacking flow. All methods must be called from a
// single goroutine; within a tick, Step runs before any queries.
type Session struct {
	cfg      config.Config
	world    *sim.World
	resolver *placement.Resolver
	log      *log.Logger

	selected *registry.BlockDefinition
	preview  *Preview
	placed   int
}

func NewSession(cfg config.Config, logger *log.Logger) *Session {
	return &Session{
		cfg:      cfg,
		world:    sim.NewWorld(cfg),
		resolver: placement.NewResolver(cfg),
		log:      logger,
	}
}

func (s *Session) World() *sim.World { return s.world }

// SelectBlock picks the block type for subsequent placements.
func (s *Session) SelectBlock(name string) error {
	def, ok := registry.Get(name)
	if !ok {
		return fmt.Errorf("unknown block type %q", name)
	}
	s.selected = def
	s.preview = nil
	return nil
}

// Selected returns the name of the current block type, or "".
func (s *Session) Selected() string {
	if s.selected == nil {
		return ""
	}
	return s.selected.Name
}

// Surfaces collects the intersectable boxes of every placed block for the
// resolver. Rebuilt per query so the resolver never sees stale transforms.
func (s *Session) Surfaces() []placement.Surface {
	bodies := s.world.Bodies()
	surfaces := make([]placement.Surface, 0, len(bodies))
	for _, b := range bodies {
		surfaces = append(surfaces, placement.Surface{Body: b.ID, Box: b.Box()})
	}
	return surfaces
}

// PointAt resolves the ray into a placement preview. Returns nil when the
// ray lands nowhere or no block type is selected; that hides the preview,
// it is not an error.
func (s *Session) PointAt(ray geom.Ray) *Preview {
	s.preview = nil
	if s.selected == nil {
		return nil
	}
	c, ok := s.resolver.Resolve(ray, s.Surfaces())
	if !ok {
		return nil
	}

	half := s.selected.HalfExtents
	center := mgl32.Vec3{c.Position.X(), c.SurfaceY + half.Y(), c.Position.Z()}
	valid := s.world.IsValidPlacement(center, half, s.cfg.Placement.CollisionTolerance) &&
		s.world.HasSupport(center, half)

	s.preview = &Preview{Candidate: c, Center: center, Valid: valid}
	return s.preview
}

// Preview returns the current preview, nil when hidden.
func (s *Session) Preview() *Preview { return s.preview }

// Confirm turns the current preview into a placed body. The validity checks
// run again here: the world may have moved since PointAt.
func (s *Session) Confirm() (*physics.Body, error) {
	if s.selected == nil {
		return nil, ErrNoSelection
	}
	if s.preview == nil {
		return nil, ErrNoCandidate
	}

	half := s.selected.HalfExtents
	center := s.preview.Center
	if !s.world.IsValidPlacement(center, half, s.cfg.Placement.CollisionTolerance) {
		return nil, ErrInvalidPlacement
	}
	if !s.world.HasSupport(center, half) {
		return nil, ErrUnsupported
	}

	b := physics.NewBody(center, half, s.selected.Mass)
	b.BlockType = s.selected.Name
	b.Friction = s.selected.Friction
	b.LinearDamping = s.cfg.Physics.LinearDamping
	b.AngularDamping = s.cfg.Physics.AngularDamping
	b.Restitution = s.cfg.Physics.Restitution
	s.world.AddBody(b)

	s.placed++
	onBlock := s.preview.Candidate.OnBlock
	s.preview = nil
	s.log.Info("block placed",
		"type", b.BlockType, "id", b.ID,
		"x", center.X(), "y", center.Y(), "z", center.Z(),
		"onBlock", onBlock)
	return b, nil
}

// Cancel discards the current preview.
func (s *Session) Cancel() { s.preview = nil }

// Reset clears the tower; the selected block type survives.
func (s *Session) Reset() {
	s.world.Reset()
	s.preview = nil
	s.placed = 0
	s.log.Info("session reset")
}

// Step advances the simulation by elapsed seconds.
func (s *Session) Step(elapsed float32) {
	defer profiling.Track("world.Step")()
	s.world.Step(elapsed)
}

// Placed reports how many blocks were confirmed since the last reset.
func (s *Session) Placed() int { return s.placed }

// Run drives the simulation on a fixed ticker until the context is done.
// Each tick steps by the measured wall-clock elapsed and then calls onTick,
// so queries always observe post-step state.
func (s *Session) Run(ctx context.Context, tickRate int, onTick func()) {
	interval := time.Second / time.Duration(tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			profiling.ResetFrame()
			s.Step(float32(now.Sub(last).Seconds()))
			last = now
			if onTick != nil {
				onTick()
			}
		}
	}
}
