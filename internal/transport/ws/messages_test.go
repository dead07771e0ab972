package ws

import (
	"encoding/json"
	"testing"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(t *testing.T, msg interface{})
	}{
		{
			name: "point",
			data: `{"type":"point","x":640,"y":360}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(*PointMessage)
				if !ok {
					t.Fatalf("expected *PointMessage, got %T", msg)
				}
				if m.X != 640 || m.Y != 360 {
					t.Errorf("coordinates lost in parsing: %+v", m)
				}
			},
		},
		{
			name: "select",
			data: `{"type":"select","block":"crate"}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(*SelectMessage)
				if !ok || m.Block != "crate" {
					t.Fatalf("expected select of crate, got %T %+v", msg, msg)
				}
			},
		},
		{
			name: "confirm",
			data: `{"type":"confirm"}`,
			check: func(t *testing.T, msg interface{}) {
				if _, ok := msg.(*ConfirmMessage); !ok {
					t.Fatalf("expected *ConfirmMessage, got %T", msg)
				}
			},
		},
		{
			name: "reset",
			data: `{"type":"reset"}`,
			check: func(t *testing.T, msg interface{}) {
				if _, ok := msg.(*ResetMessage); !ok {
					t.Fatalf("expected *ResetMessage, got %T", msg)
				}
			},
		},
		{
			name: "ping echoes client time",
			data: `{"type":"ping","client_time":123.5}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(*PingMessage)
				if !ok || m.ClientTime != 123.5 {
					t.Fatalf("expected ping with client_time, got %T %+v", msg, msg)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseMessage([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseMessage(%s) failed: %v", tt.data, err)
			}
			tt.check(t, msg)
		})
	}
}

func TestParseMessageUnknownType(t *testing.T) {
	if _, err := ParseMessage([]byte(`{"type":"teleport"}`)); err == nil {
		t.Error("unknown discriminator must be an error")
	}
}

func TestParseMessageMalformed(t *testing.T) {
	if _, err := ParseMessage([]byte(`{not json`)); err == nil {
		t.Error("malformed JSON must be an error")
	}
}

func TestPreviewMessageRoundTrip(t *testing.T) {
	out := &PreviewMessage{
		Type:    MessageTypePreview,
		Visible: true,
		Center:  [3]float32{5, 2.5, -5},
		Valid:   true,
	}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	var in PreviewMessage
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatal(err)
	}
	if in != *out {
		t.Errorf("round trip mismatch: %+v vs %+v", in, out)
	}
}
