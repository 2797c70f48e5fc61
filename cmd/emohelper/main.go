// emohelper watches the webcam, recognizes the user's emotion through the
// Baidu face API and answers with a spoken line and mood music.
// The dashboard at http://localhost:<port> shows the state and the controls.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/emotional-helper/internal/config"
	"github.com/teslashibe/emotional-helper/internal/httpc"
	"github.com/teslashibe/emotional-helper/internal/log"
	"github.com/teslashibe/emotional-helper/pkg/audio"
	"github.com/teslashibe/emotional-helper/pkg/baidu"
	"github.com/teslashibe/emotional-helper/pkg/camera"
	"github.com/teslashibe/emotional-helper/pkg/camera/webcam"
	"github.com/teslashibe/emotional-helper/pkg/detection"
	"github.com/teslashibe/emotional-helper/pkg/emotions"
	"github.com/teslashibe/emotional-helper/pkg/face"
	"github.com/teslashibe/emotional-helper/pkg/helper"
	"github.com/teslashibe/emotional-helper/pkg/journal"
	"github.com/teslashibe/emotional-helper/pkg/journal/sqlite"
	"github.com/teslashibe/emotional-helper/pkg/protocol"
	"github.com/teslashibe/emotional-helper/pkg/tts"
	"github.com/teslashibe/emotional-helper/pkg/web"
)

// Environment variables read here; the loop settings are read by helper.
const (
	envPort      = "EMOHELPER_PORT"
	envCamera    = "EMOHELPER_CAMERA"
	envJournal   = "EMOHELPER_JOURNAL"
	envFaceModel = "EMOHELPER_FACE_MODEL"
	envScripts   = "EMOHELPER_SCRIPTS"
	envPlayer    = "EMOHELPER_PLAYER"
	envVoice     = "EMOHELPER_VOICE"
	envLogLevel  = "LOG_LEVEL"
)

type options struct {
	debug    bool
	logLevel string
	port     string
	camera   int
	preset   string
	voice    string
	helper   helper.Config
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ .env: %v\n", err)
		os.Exit(1)
	}

	opts := parseFlags()

	level := opts.logLevel
	if opts.debug {
		level = "debug"
	}
	log.Init(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		log.Error("emohelper failed", "error", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and applies environment overrides.
func parseFlags() options {
	cfg := helper.DefaultConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	logLevel := flag.String("log-level", config.EnvOr(envLogLevel, "info"), "Log level: debug, info, warn, error")
	port := flag.String("port", config.EnvOr(envPort, "8080"), "Dashboard port")
	cam := flag.Int("camera", config.EnvInt(envCamera, 0), "Camera device index")
	preset := flag.String("preset", "default", fmt.Sprintf("Camera preset %v", camera.PresetNames()))
	assets := flag.String("assets", "", "Assets directory (music/, musiclogo/)")
	runtimeDir := flag.String("runtime", "", "Runtime directory for frame.jpg and voice.mp3")
	voice := flag.String("voice", config.Env(envVoice), "Baidu voice preset or per value")
	flag.Parse()

	cfg.LoadEnvConfig()
	if *assets != "" {
		cfg.AssetsDir = *assets
	}
	if *runtimeDir != "" {
		cfg.RuntimeDir = *runtimeDir
	}

	return options{
		debug:    *debug,
		logLevel: *logLevel,
		port:     *port,
		camera:   *cam,
		preset:   *preset,
		voice:    *voice,
		helper:   cfg,
	}
}

func run(ctx context.Context, opts options) error {
	logger := log.Component("main")

	if err := opts.helper.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	faceCreds := baidu.FaceCredentialsFromEnv()
	ttsCreds := baidu.TTSCredentialsFromEnv()
	if !faceCreds.Valid() {
		logger.Warn("face credentials missing, recognition will fail", "env", config.EnvFaceAPIKey+" / "+config.EnvFaceSecretKey)
	}
	if !ttsCreds.Valid() {
		logger.Warn("tts credentials missing, lines will not be spoken", "env", config.EnvTTSAPIKey+" / "+config.EnvTTSSecretKey)
	}

	registry := emotions.NewRegistry()
	if path := config.Env(envScripts); path != "" {
		scripts, err := emotions.LoadScripts(path)
		if err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
		if err := registry.ApplyScripts(scripts); err != nil {
			return fmt.Errorf("apply scripts: %w", err)
		}
		logger.Info("voice lines loaded", "path", path, "labels", len(scripts))
	}

	camCfg := camera.DefaultConfig()
	if p := camera.GetPreset(opts.preset); p != nil {
		camCfg = *p
	} else {
		logger.Warn("unknown camera preset, using default", "preset", opts.preset)
	}
	camCfg.DeviceID = opts.camera
	cam, err := webcam.Open(camCfg, log.L())
	if err != nil {
		return fmt.Errorf("open camera %d: %w", opts.camera, err)
	}

	engineOpts := []audio.Option{audio.WithLogger(log.L())}
	if player := config.Env(envPlayer); player != "" {
		engineOpts = append(engineOpts, audio.WithPlayer(player))
	}
	engine, err := audio.NewExecEngine(engineOpts...)
	if err != nil {
		cam.Close()
		return fmt.Errorf("audio engine: %w", err)
	}

	var store journal.Journal = journal.NewMemory(journal.DefaultLimit)
	if path := config.Env(envJournal); path != "" {
		db, err := sqlite.Open(path)
		if err != nil {
			cam.Close()
			engine.Close()
			return fmt.Errorf("open journal: %w", err)
		}
		store = db
		logger.Info("journal enabled", "path", path)
	}

	var gate helper.FaceGate
	if model := config.Env(envFaceModel); model != "" {
		detCfg := detection.DefaultConfig()
		detCfg.ModelPath = model
		det, err := detection.NewYuNet(detCfg)
		if err != nil {
			logger.Warn("face gate disabled", "model", model, "error", err)
		} else {
			gate = detection.NewGate(det, detCfg.MinFaceArea, log.L())
			logger.Info("face gate enabled", "model", model)
		}
	}

	ttsOpts := []tts.Option{tts.WithCredentials(ttsCreds), tts.WithLogger(log.L())}
	if opts.voice != "" {
		ttsOpts = append(ttsOpts, tts.WithVoice(opts.voice))
	}
	speech := tts.NewBaidu(ttsOpts...)
	if ttsCreds.Valid() {
		hctx, hcancel := context.WithTimeout(ctx, httpc.TokenTimeout)
		if err := speech.Health(hctx); err != nil {
			logger.Warn("tts credentials rejected", "error", err)
		}
		hcancel()
	}
	classifier := face.NewClient(
		face.WithCredentials(faceCreds),
		face.WithLogger(log.L()),
	)

	// the dashboard needs the app for controls and the app needs the
	// dashboard as its presenter
	var app *helper.App
	server := web.NewServer(opts.port,
		web.WithAssets(opts.helper.IconDir()),
		web.WithLogger(log.L()),
		web.WithControl(func(ctx context.Context, action protocol.Action) error {
			return app.Control(ctx, action)
		}),
		web.WithHistory(store.Recent),
	)

	app, err = helper.New(opts.helper, helper.Deps{
		Camera:     cam,
		Classifier: classifier,
		Speech:     speech,
		Engine:     engine,
		Presenter:  server,
		Journal:    store,
		FaceGate:   gate,
		Registry:   registry,
		Logger:     log.L(),
	})
	if err != nil {
		cam.Close()
		engine.Close()
		store.Close()
		return err
	}
	defer app.Shutdown()

	server.StartAsync()
	defer func() {
		if err := server.Shutdown(); err != nil {
			logger.Warn("dashboard shutdown", "error", err)
		}
	}()

	logger.Info("emotional helper running", "dashboard", "http://localhost:"+opts.port, "camera", opts.camera)

	err = app.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
