// Package protocol defines the dashboard control vocabulary and the
// websocket message envelope used on /ws/control.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Dashboard → helper
	TypeControl MessageType = "control" // button press

	// Helper → dashboard
	TypeResult MessageType = "result" // outcome of a control
	TypeError  MessageType = "error"  // malformed request

	// Bidirectional
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data any) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v any) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("failed to parse message: missing type")
	}
	return &msg, nil
}

// ControlData carries a control action.
type ControlData struct {
	Action Action `json:"action"`
}

// ResultData reports how a control was handled.
type ResultData struct {
	Action Action  `json:"action"`
	OK     bool    `json:"ok"`
	Error  string  `json:"error,omitempty"`
	Volume float64 `json:"volume"`
	Paused bool    `json:"paused"`
}

// ErrorData describes a rejected message.
type ErrorData struct {
	Message string `json:"message"`
}

// PingData is sent by either side to check liveness.
type PingData struct {
	ID string `json:"id,omitempty"`
}

// PongData echoes the ping ID.
type PongData struct {
	ID string `json:"id,omitempty"`
}

// NewControlMessage creates a control message.
func NewControlMessage(a Action) (*Message, error) {
	return NewMessage(TypeControl, ControlData{Action: a})
}

// NewResultMessage creates a result message.
func NewResultMessage(r ResultData) (*Message, error) {
	return NewMessage(TypeResult, r)
}

// NewErrorMessage creates an error message.
func NewErrorMessage(format string, args ...any) (*Message, error) {
	return NewMessage(TypeError, ErrorData{Message: fmt.Sprintf(format, args...)})
}
