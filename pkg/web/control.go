package web

import (
	"context"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/emotional-helper/pkg/protocol"
)

// registerControlSocket adds /ws/control, a request/response socket for
// the buttons. Each control message gets a result message back.
func (s *Server) registerControlSocket(app *fiber.App) {
	app.Get("/ws/control", websocket.New(s.handleControlWS))
}

func (s *Server) handleControlWS(c *websocket.Conn) {
	var writeMu sync.Mutex
	send := func(msg *protocol.Message, err error) bool {
		if err != nil {
			s.logger.Warn("encode control reply", "error", err)
			return true
		}
		data, err := msg.Bytes()
		if err != nil {
			return true
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		return c.WriteMessage(websocket.TextMessage, data) == nil
	}

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			if !send(protocol.NewErrorMessage("%v", err)) {
				return
			}
			continue
		}

		switch msg.Type {
		case protocol.TypePing:
			var ping protocol.PingData
			_ = msg.ParseData(&ping)
			if !send(protocol.NewMessage(protocol.TypePong, protocol.PongData{ID: ping.ID})) {
				return
			}

		case protocol.TypeControl:
			var ctrl protocol.ControlData
			if err := msg.ParseData(&ctrl); err != nil {
				if !send(protocol.NewErrorMessage("invalid control: %v", err)) {
					return
				}
				continue
			}
			action, err := protocol.ParseAction(string(ctrl.Action))
			if err != nil {
				if !send(protocol.NewErrorMessage("%v", err)) {
					return
				}
				continue
			}
			res, _ := s.runControl(context.Background(), action)
			if !send(protocol.NewResultMessage(res)) {
				return
			}

		default:
			if !send(protocol.NewErrorMessage("unsupported message type %q", msg.Type)) {
				return
			}
		}
	}
}
