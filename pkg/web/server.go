// Package web serves the helper's dashboard: current mood, line, music,
// elapsed time and the control buttons.
package web

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/emotional-helper/pkg/emotions"
	"github.com/teslashibe/emotional-helper/pkg/hub"
	"github.com/teslashibe/emotional-helper/pkg/journal"
	"github.com/teslashibe/emotional-helper/pkg/protocol"
)

//go:embed static
var staticFS embed.FS

// Idle display values.
const (
	NoMusicTitle = "当前没有歌曲正在播放"
	ZeroElapsed  = "00:00"
)

const (
	maxLogs       = 500
	defaultPort   = "8080"
	controlWait   = 5 * time.Second
	historyLimit  = journal.DefaultLimit
	shutdownGrace = 3 * time.Second
)

// State is what the dashboard shows.
type State struct {
	Emotion    string  `json:"emotion"`     // "您当前情绪为：开心"
	Label      string  `json:"label"`       // emotion label, empty when idle
	Icon       string  `json:"icon"`        // asset name without extension
	MusicTitle string  `json:"music_title"` // background track title
	Elapsed    string  `json:"elapsed"`     // mm:ss of the current track
	Message    string  `json:"message"`     // spoken line or error text
	Volume     float64 `json:"volume"`
	Paused     bool    `json:"paused"`
	Released   bool    `json:"released"`
	Scanning   bool    `json:"scanning"`
}

// IdleState is the display before any mood is detected and after release.
func IdleState() State {
	return State{
		Emotion:    emotions.DisplayPrefix,
		Icon:       emotions.IdleIcon,
		MusicTitle: NoMusicTitle,
		Elapsed:    ZeroElapsed,
		Volume:     1.0,
		Released:   true,
		Scanning:   true,
	}
}

// LogEntry represents a log line for the dashboard
type LogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, emotion, speech, error
	Message string `json:"message"`
}

// ControlFunc handles a dashboard button press.
type ControlFunc func(ctx context.Context, action protocol.Action) error

// HistoryFunc returns recent reactions.
type HistoryFunc func(ctx context.Context, limit int) ([]journal.Entry, error)

// Option configures a Server.
type Option func(*Server)

// WithAssets serves icons from dir under /assets.
func WithAssets(dir string) Option {
	return func(s *Server) {
		s.assetsDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithControl sets the control handler.
func WithControl(fn ControlFunc) Option {
	return func(s *Server) {
		s.onControl = fn
	}
}

// WithHistory sets the history source.
func WithHistory(fn HistoryFunc) Option {
	return func(s *Server) {
		s.onHistory = fn
	}
}

// Server is the web dashboard server
type Server struct {
	app       *fiber.App
	port      string
	assetsDir string
	logger    *slog.Logger

	state   State
	stateMu sync.RWMutex

	logs   []LogEntry
	logsMu sync.RWMutex

	statusHub *hub.Hub
	logHub    *hub.Hub
	cameraHub *hub.Hub

	hubCtx    context.Context
	hubCancel context.CancelFunc
	startOnce sync.Once
	stopOnce  sync.Once

	onControl ControlFunc
	onHistory HistoryFunc
}

// NewServer creates a new web dashboard server
func NewServer(port string, opts ...Option) *Server {
	if port == "" {
		port = defaultPort
	}
	s := &Server{
		port:   port,
		logger: slog.Default(),
		state:  IdleState(),
		logs:   make([]LogEntry, 0, maxLogs),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "web")
	s.statusHub = hub.New("status", hub.WithReplay(), hub.WithLogger(s.logger))
	s.logHub = hub.New("logs", hub.WithLogger(s.logger))
	s.cameraHub = hub.New("camera", hub.WithReplay(), hub.WithLogger(s.logger))
	s.hubCtx, s.hubCancel = context.WithCancel(context.Background())

	app := fiber.New(fiber.Config{
		AppName:               "Emotional Helper",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	static, _ := fs.Sub(staticFS, "static")
	if s.assetsDir != "" {
		app.Static("/assets", s.assetsDir)
	}

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/logs", s.handleGetLogs)
	api.Get("/history", s.handleHistory)
	api.Get("/controls", s.handleListControls)
	api.Post("/controls/:action", s.handleControl)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/logs", websocket.New(s.handleLogsWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	s.registerControlSocket(app)

	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(static),
		Index: "index.html",
	}))

	s.app = app
	return s
}

// App exposes the fiber app (used by tests via app.Test).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) startHubs() {
	s.startOnce.Do(func() {
		go s.statusHub.Run(s.hubCtx)
		go s.logHub.Run(s.hubCtx)
		go s.cameraHub.Run(s.hubCtx)
		// seed replay so the first client sees the idle display
		s.statusHub.BroadcastJSON(s.State())
	})
}

// Start starts the hubs and listens on the configured port. It blocks.
func (s *Server) Start() error {
	s.startHubs()
	s.logger.Info("dashboard listening", "url", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.startHubs()
	return s.app.Listener(ln)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("web server stopped", "error", err)
		}
	}()
}

// State returns a copy of the displayed state.
func (s *Server) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// UpdateState mutates the displayed state and broadcasts it.
func (s *Server) UpdateState(update func(*State)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// AddLog adds a log entry and broadcasts to clients
func (s *Server) AddLog(logType, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Type:    logType,
		Message: message,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[1:]
	}
	s.logsMu.Unlock()

	s.logHub.BroadcastJSON(entry)
}

// Logs returns a copy of the buffered log entries.
func (s *Server) Logs() []LogEntry {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	out := make([]LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

// SendCameraFrame sends a camera frame to all connected clients
func (s *Server) SendCameraFrame(jpegData []byte) {
	s.cameraHub.BroadcastBinary(jpegData)
}

// Shutdown stops the hubs and the HTTP server. Safe to call more than once.
func (s *Server) Shutdown() error {
	var err error
	s.stopOnce.Do(func() {
		s.hubCancel()
		err = s.app.ShutdownWithTimeout(shutdownGrace)
	})
	return err
}
