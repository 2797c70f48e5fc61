package web

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/emotional-helper/pkg/hub"
	"github.com/teslashibe/emotional-helper/pkg/protocol"
)

// handleStatus returns the current display state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.State())
}

// handleGetLogs returns recent log entries
func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	return c.JSON(s.Logs())
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	if s.onHistory == nil {
		return c.JSON([]any{})
	}
	limit := historyLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = n
	}
	entries, err := s.onHistory(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(entries)
}

func (s *Server) handleListControls(c *fiber.Ctx) error {
	return c.JSON(protocol.Actions())
}

// handleControl runs a button press.
func (s *Server) handleControl(c *fiber.Ctx) error {
	action, err := protocol.ParseAction(c.Params("action"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	res, status := s.runControl(c.UserContext(), action)
	return c.Status(status).JSON(res)
}

// runControl calls the control handler and builds the reply.
func (s *Server) runControl(ctx context.Context, action protocol.Action) (protocol.ResultData, int) {
	res := protocol.ResultData{Action: action}
	if s.onControl == nil {
		res.Error = "controls not configured"
		return res, fiber.StatusServiceUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, controlWait)
	defer cancel()

	status := fiber.StatusOK
	if err := s.onControl(ctx, action); err != nil {
		res.Error = err.Error()
		status = fiber.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			status = fiber.StatusServiceUnavailable
		}
	} else {
		res.OK = true
	}

	st := s.State()
	res.Volume = st.Volume
	res.Paused = st.Paused
	return res, status
}

// handleLogsWS streams log entries, starting with the buffered ones.
func (s *Server) handleLogsWS(c *websocket.Conn) {
	// written before the client's writer goroutine starts
	for _, entry := range s.Logs() {
		if err := c.WriteJSON(entry); err != nil {
			return
		}
	}
	s.serveHubClient(s.logHub, c)
}

// handleCameraWS streams JPEG frames as binary messages.
func (s *Server) handleCameraWS(c *websocket.Conn) {
	s.serveHubClient(s.cameraHub, c)
}

// handleStatusWS streams state updates; the latest is replayed on connect.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	s.serveHubClient(s.statusHub, c)
}

func (s *Server) serveHubClient(h *hub.Hub, c *websocket.Conn) {
	hub.Serve(h, c)
}
