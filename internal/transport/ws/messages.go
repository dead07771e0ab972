package ws

import (
	"encoding/json"
	"fmt"

	"blockstack/internal/sim"
)

// Message type discriminators. Client to server: point, select, confirm,
// cancel, reset, ping. Server to client: welcome, state, preview, placed,
// rejected, pong.
const (
	MessageTypePoint   = "point"
	MessageTypeSelect  = "select"
	MessageTypeConfirm = "confirm"
	MessageTypeCancel  = "cancel"
	MessageTypeReset   = "reset"
	MessageTypePing    = "ping"

	MessageTypeWelcome  = "welcome"
	MessageTypeState    = "state"
	MessageTypePreview  = "preview"
	MessageTypePlaced   = "placed"
	MessageTypeRejected = "rejected"
	MessageTypePong     = "pong"
)

// PointMessage carries viewer screen coordinates to aim the pick ray.
type PointMessage struct {
	Type string  `json:"type"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
}

// SelectMessage picks the block type for subsequent placements.
type SelectMessage struct {
	Type  string `json:"type"`
	Block string `json:"block"`
}

// ConfirmMessage commits the current preview.
type ConfirmMessage struct {
	Type string `json:"type"`
}

// CancelMessage discards the current preview.
type CancelMessage struct {
	Type string `json:"type"`
}

// ResetMessage clears the tower.
type ResetMessage struct {
	Type string `json:"type"`
}

// PingMessage is a liveness probe; ClientTime is echoed back.
type PingMessage struct {
	Type       string  `json:"type"`
	ClientTime float64 `json:"client_time"`
}

// WelcomeMessage is sent once per connection: the block catalogue and the
// tunables a renderer needs to draw the scene.
type WelcomeMessage struct {
	Type       string          `json:"type"`
	Blocks     []CatalogueItem `json:"blocks"`
	GridSize   float32         `json:"grid_size"`
	BuildHalf  float32         `json:"build_half"`
	GroundHalf [3]float32      `json:"ground_half"`
}

type CatalogueItem struct {
	Name        string     `json:"name"`
	HalfExtents [3]float32 `json:"half_extents"`
	Color       uint32     `json:"color"`
}

// StateMessage is the periodic transform broadcast.
type StateMessage struct {
	Type      string          `json:"type"`
	Tick      uint64          `json:"tick"`
	MaxHeight float32         `json:"max_height"`
	Bodies    []sim.BodyState `json:"bodies"`
}

// PreviewMessage mirrors the session's current placement preview.
type PreviewMessage struct {
	Type    string     `json:"type"`
	Visible bool       `json:"visible"`
	Center  [3]float32 `json:"center"`
	Valid   bool       `json:"valid"`
	OnBlock bool       `json:"on_block"`
}

// PlacedMessage confirms a successful placement.
type PlacedMessage struct {
	Type   string  `json:"type"`
	ID     uint64  `json:"id"`
	Block  string  `json:"block"`
	Placed int     `json:"placed"`
	Height float32 `json:"height"`
}

// RejectedMessage reports why a command was refused.
type RejectedMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// PongMessage answers a ping.
type PongMessage struct {
	Type       string  `json:"type"`
	ClientTime float64 `json:"client_time"`
}

// ParseMessage decodes an incoming client message by its type discriminator.
// Unknown types are errors; the read loop drops the message and keeps the
// connection.
func ParseMessage(data []byte) (interface{}, error) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parsing message envelope: %w", err)
	}

	switch base.Type {
	case MessageTypePoint:
		var msg PointMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("parsing point message: %w", err)
		}
		return &msg, nil
	case MessageTypeSelect:
		var msg SelectMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("parsing select message: %w", err)
		}
		return &msg, nil
	case MessageTypeConfirm:
		return &ConfirmMessage{Type: base.Type}, nil
	case MessageTypeCancel:
		return &CancelMessage{Type: base.Type}, nil
	case MessageTypeReset:
		return &ResetMessage{Type: base.Type}, nil
	case MessageTypePing:
		var msg PingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("parsing ping message: %w", err)
		}
		return &msg, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", base.Type)
	}
}
