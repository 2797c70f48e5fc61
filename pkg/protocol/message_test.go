package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    any
	}{
		{"control message", TypeControl, ControlData{Action: ActionPause}},
		{"result message", TypeResult, ResultData{Action: ActionVolumeUp, OK: true, Volume: 0.6}},
		{"nil data", TypePing, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if err != nil {
				t.Fatalf("NewMessage() error = %v", err)
			}
			if msg.Type != tt.msgType {
				t.Errorf("type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("timestamp should be set")
			}
			if tt.data == nil && msg.Data != nil {
				t.Error("nil data should produce no payload")
			}
		})
	}
}

func TestControlRoundTrip(t *testing.T) {
	msg, err := NewControlMessage(ActionRelease)
	if err != nil {
		t.Fatal(err)
	}
	data, err := msg.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseMessage(data)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	var ctrl ControlData
	if err := parsed.ParseData(&ctrl); err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	if ctrl.Action != ActionRelease {
		t.Errorf("action = %q, want release", ctrl.Action)
	}
}

func TestParseInvalidMessage(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "hello"},
		{"missing type", `{"data":{"action":"pause"}}`},
		{"wrong shape", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMessage([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	msg, _ := NewErrorMessage("bad action %q", "dance")
	var e ErrorData
	if err := json.Unmarshal(msg.Data, &e); err != nil {
		t.Fatal(err)
	}
	if e.Message != `bad action "dance"` {
		t.Errorf("message = %q", e.Message)
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(string(a))
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %q, %v", a, got, err)
		}
	}
	if _, err := ParseAction("dance"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
	if len(Actions()) != 6 {
		t.Errorf("expected 6 actions, got %d", len(Actions()))
	}
}
