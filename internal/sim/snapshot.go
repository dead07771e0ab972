package sim

// BodyState is the per-body transform exposed to the rendering collaborator
// after each step. The core never holds visual handles; renderers map IDs to
// their own resources.
type BodyState struct {
	ID          uint64     `json:"id"`
	BlockType   string     `json:"block_type"`
	Position    [3]float32 `json:"position"`
	Orientation [4]float32 `json:"orientation"` // x, y, z, w
	HalfExtents [3]float32 `json:"half_extents"`
}

// Snapshot copies the current transform of every dynamic body, in placement
// order.
func (w *World) Snapshot() []BodyState {
	out := make([]BodyState, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, BodyState{
			ID:          b.ID,
			BlockType:   b.BlockType,
			Position:    [3]float32{b.Position.X(), b.Position.Y(), b.Position.Z()},
			Orientation: [4]float32{b.Orientation.X(), b.Orientation.Y(), b.Orientation.Z(), b.Orientation.W},
			HalfExtents: [3]float32{b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()},
		})
	}
	return out
}
