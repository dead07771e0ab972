package main

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"blockstack/internal/game"
	"blockstack/internal/geom"
	"blockstack/internal/profiling"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted headless stacking session",
	Long: `Run a short scripted session without a viewer: stack a few crates,
cap the tower with a slab, provoke a couple of rejections, then let the
simulation settle and report the final tower height.`,
	Run: runDemo,
}

func runDemo(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	s := game.NewSession(cfg, logger)

	place := func(block string, x, z float32) {
		if err := s.SelectBlock(block); err != nil {
			logger.Error("select failed", "block", block, "err", err)
			return
		}
		ray := geom.Ray{Origin: mgl32.Vec3{x, 200, z}, Dir: mgl32.Vec3{0, -1, 0}}
		p := s.PointAt(ray)
		if p == nil {
			logger.Warn("nothing to aim at", "x", x, "z", z)
			return
		}
		if _, err := s.Confirm(); err != nil {
			logger.Warn("placement rejected", "block", block, "x", x, "z", z, "err", err)
		}
	}

	// A three-crate column at the origin, capped with a slab.
	place("crate", 0, 0)
	place("crate", 0, 0)
	place("crate", 0, 0)
	place("slab", 0, 0)

	// A second, separate pillar.
	place("pillar", 20, 20)

	// Two rejections: a ground-level slab snapping into the column's
	// footprint, and a confirm with nothing previewed.
	place("slab", 7, 0)
	s.Cancel()
	if _, err := s.Confirm(); err != nil {
		logger.Warn("placement rejected", "err", err)
	}

	// Let everything settle.
	profiling.ResetFrame()
	steps := cfg.Viewer.TickRate * 2
	for i := 0; i < steps; i++ {
		s.Step(cfg.Physics.FixedStep)
	}

	logger.Info("demo finished",
		"placed", s.Placed(),
		"height", s.World().MaxHeight(),
		"profile", profiling.TopN(3))
}
