// Package hub fans dashboard updates out to websocket clients.
package hub

import "github.com/gofiber/websocket/v2"

// Message is one outbound websocket frame: a JSON document (state, log
// line) or a binary JPEG preview frame.
type Message struct {
	Binary bool
	Data   []byte
}

// JSON wraps pre-encoded JSON.
func JSON(data []byte) Message {
	return Message{Data: data}
}

// Frame wraps a JPEG camera frame.
func Frame(jpeg []byte) Message {
	return Message{Binary: true, Data: jpeg}
}

func (m Message) opcode() int {
	if m.Binary {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}
