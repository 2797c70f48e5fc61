// Package helper runs the emotional helper: it watches the camera, asks the
// cloud which emotion the user shows, answers with a spoken line and, for
// some moods, keeps a matching track looping until the user releases it.
//
// A single goroutine (Run) owns every piece of mutable state. Classification
// and synthesis happen on a worker goroutine whose result is handed back to
// the loop over a channel, so the display and the controls stay responsive
// while the network is slow.
package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/teslashibe/emotional-helper/pkg/audio"
	"github.com/teslashibe/emotional-helper/pkg/camera"
	"github.com/teslashibe/emotional-helper/pkg/emotions"
	"github.com/teslashibe/emotional-helper/pkg/face"
	"github.com/teslashibe/emotional-helper/pkg/journal"
	"github.com/teslashibe/emotional-helper/pkg/playback"
	"github.com/teslashibe/emotional-helper/pkg/protocol"
	"github.com/teslashibe/emotional-helper/pkg/tts"
	"github.com/teslashibe/emotional-helper/pkg/web"
)

// Presenter displays the helper state. *web.Server implements it.
type Presenter interface {
	UpdateState(update func(*web.State))
	AddLog(logType, message string)
	SendCameraFrame(jpeg []byte)
}

// FaceGate reports whether a frame contains a face before the cloud is asked.
type FaceGate interface {
	HasFace(jpeg []byte) (bool, error)
}

// Deps are the collaborators of an App. Camera, Classifier, Speech and
// Engine are required; the rest have defaults.
type Deps struct {
	Camera     camera.Source
	Classifier face.Classifier
	Speech     tts.Provider
	Engine     audio.Engine

	Presenter Presenter          // nil: nothing is displayed
	Journal   journal.Journal    // nil: reactions are not recorded
	FaceGate  FaceGate           // nil: every sampled frame goes to the cloud
	Registry  *emotions.Registry // nil: built-in lines
	Rand      *rand.Rand         // nil: global source
	Logger    *slog.Logger
}

type controlRequest struct {
	action protocol.Action
	reply  chan error
}

// App is the main loop.
type App struct {
	cfg      Config
	camera   camera.Source
	faces    face.Classifier
	speech   tts.Provider
	player   *playback.Controller
	view     Presenter
	journal  journal.Journal
	gate     FaceGate
	registry *emotions.Registry
	rng      *rand.Rand
	logger   *slog.Logger

	controls chan controlRequest
	results  chan reaction
	done     chan struct{}
	running  atomic.Bool
	workers  sync.WaitGroup
	closeOne sync.Once
	closeErr error

	// owned by the loop goroutine
	mood        emotions.Label
	scanning    bool
	inFlight    bool
	counter     int
	readErrors  int
	lastElapsed string
}

// New validates cfg and assembles an App.
func New(cfg Config, deps Deps) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Camera == nil:
		return nil, fmt.Errorf("%w: camera", ErrMissingDependency)
	case deps.Classifier == nil:
		return nil, fmt.Errorf("%w: classifier", ErrMissingDependency)
	case deps.Speech == nil:
		return nil, fmt.Errorf("%w: speech", ErrMissingDependency)
	case deps.Engine == nil:
		return nil, fmt.Errorf("%w: audio engine", ErrMissingDependency)
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := deps.Registry
	if registry == nil {
		registry = emotions.NewRegistry()
	}
	view := deps.Presenter
	if view == nil {
		view = nopPresenter{}
	}

	return &App{
		cfg:    cfg,
		camera: deps.Camera,
		faces:  deps.Classifier,
		speech: deps.Speech,
		player: playback.New(deps.Engine, playback.Config{
			InitialVolume: cfg.InitialVolume,
			Logger:        logger,
		}),
		view:     view,
		journal:  deps.Journal,
		gate:     deps.FaceGate,
		registry: registry,
		rng:      deps.Rand,
		logger:   logger.With("component", "helper"),
		controls: make(chan controlRequest),
		results:  make(chan reaction, 1),
		done:     make(chan struct{}),
		scanning: true,
	}, nil
}

// Run drives the loop until ctx is cancelled or a quit control arrives.
// It returns nil on quit and ctx.Err() on cancellation. Resources are
// released before it returns.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		close(a.done)
		a.Shutdown()
	}()

	a.showIdle()
	a.logger.Info("helper started",
		"sample_every", a.cfg.SampleEvery,
		"tick", a.cfg.TickInterval,
		"assets", a.cfg.AssetsDir)

	ticker := time.NewTicker(a.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("helper stopping", "reason", ctx.Err())
			return ctx.Err()

		case <-ticker.C:
			a.tick(ctx)

		case r := <-a.results:
			a.apply(r)

		case req := <-a.controls:
			err := a.handleControl(req.action)
			req.reply <- err
			if req.action == protocol.ActionQuit {
				a.logger.Info("helper stopping", "reason", "quit")
				return nil
			}
		}
	}
}

// Control forwards a dashboard action to the loop and waits for it to be
// applied.
func (a *App) Control(ctx context.Context, action protocol.Action) error {
	req := controlRequest{action: action, reply: make(chan error, 1)}
	select {
	case a.controls <- req:
	case <-a.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Shutdown stops audio and releases the camera, the speech provider, the
// face gate and the journal. Each is released once however often Shutdown
// is called. It waits for an in-flight reaction job to return first.
func (a *App) Shutdown() error {
	a.closeOne.Do(func() {
		a.workers.Wait()

		var errs []error
		if err := a.player.Close(); err != nil {
			errs = append(errs, fmt.Errorf("audio: %w", err))
		}
		if err := a.camera.Close(); err != nil {
			errs = append(errs, fmt.Errorf("camera: %w", err))
		}
		if err := a.speech.Close(); err != nil {
			errs = append(errs, fmt.Errorf("speech: %w", err))
		}
		if c, ok := a.gate.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("face gate: %w", err))
			}
		}
		if a.journal != nil {
			if err := a.journal.Close(); err != nil {
				errs = append(errs, fmt.Errorf("journal: %w", err))
			}
		}
		a.closeErr = errors.Join(errs...)
		if a.closeErr != nil {
			a.logger.Warn("shutdown", "error", a.closeErr)
		}
	})
	return a.closeErr
}

func (a *App) tick(ctx context.Context) {
	a.refreshElapsed()

	// the counter advances whether or not the frame read succeeds
	a.counter++

	if a.scanning {
		frame, err := a.camera.Read()
		if err != nil {
			a.readErrors++
			if a.readErrors == 1 {
				a.logger.Warn("camera read failed", "error", err)
			}
		} else {
			if a.readErrors > 0 {
				a.logger.Info("camera recovered", "failed_reads", a.readErrors)
				a.readErrors = 0
			}
			if a.cfg.PreviewEvery > 0 && a.counter%a.cfg.PreviewEvery == 0 {
				a.view.SendCameraFrame(frame)
			}
			if a.counter%a.cfg.SampleEvery == 0 && a.mood.IsNone() && !a.inFlight {
				a.submit(ctx, frame)
			}
		}
	}

	if a.player.Tick() == playback.EventForegroundDone {
		a.logger.Debug("voice line finished", "mood", a.mood)
		if a.cfg.AutoReleaseVoiceOnly && a.holdsVoiceOnly() {
			a.release()
		}
	}
}

func (a *App) refreshElapsed() {
	elapsed := formatElapsed(a.player.Position())
	if elapsed == a.lastElapsed {
		return
	}
	a.lastElapsed = elapsed
	a.view.UpdateState(func(s *web.State) { s.Elapsed = elapsed })
}

func (a *App) holdsVoiceOnly() bool {
	if a.mood.IsNone() {
		return false
	}
	p, err := a.registry.Get(a.mood)
	return err == nil && !p.HasMusic()
}

func (a *App) handleControl(action protocol.Action) error {
	a.logger.Debug("control", "action", action)
	switch action {
	case protocol.ActionPause:
		if err := a.player.Pause(); err != nil {
			return err
		}
		a.view.UpdateState(func(s *web.State) { s.Paused = true })
	case protocol.ActionResume:
		if err := a.player.Resume(); err != nil {
			return err
		}
		a.view.UpdateState(func(s *web.State) { s.Paused = false })
	case protocol.ActionVolumeUp, protocol.ActionVolumeDown:
		adjust := a.player.VolumeUp
		if action == protocol.ActionVolumeDown {
			adjust = a.player.VolumeDown
		}
		v, err := adjust()
		a.view.UpdateState(func(s *web.State) { s.Volume = v })
		if err != nil {
			return err
		}
	case protocol.ActionRelease:
		a.release()
	case protocol.ActionQuit:
		a.scanning = false
		a.view.UpdateState(func(s *web.State) { s.Scanning = false })
	default:
		return fmt.Errorf("%w: %q", protocol.ErrUnknownAction, action)
	}
	a.view.AddLog("control", string(action))
	return nil
}

// release stops audio and returns to idle. The emotion heading and the
// message stay as they were.
func (a *App) release() {
	if err := a.player.Release(); err != nil {
		a.logger.Warn("release audio", "error", err)
	}
	prev := a.mood
	a.mood = emotions.None
	a.lastElapsed = web.ZeroElapsed
	a.view.UpdateState(func(s *web.State) {
		s.Label = ""
		s.Icon = emotions.IdleIcon
		s.MusicTitle = web.NoMusicTitle
		s.Elapsed = web.ZeroElapsed
		s.Paused = false
		s.Released = true
	})
	if !prev.IsNone() {
		a.logger.Info("released", "mood", prev)
	}
}

func (a *App) showIdle() {
	v := a.player.Volume()
	a.lastElapsed = web.ZeroElapsed
	a.view.UpdateState(func(s *web.State) {
		*s = web.IdleState()
		s.Volume = v
	})
}

// apply installs a finished reaction.
func (a *App) apply(r reaction) {
	a.inFlight = false

	switch {
	case r.err != nil:
		a.logger.Warn("classification failed", "error", r.err)
		msg := fmt.Sprintf(classifyFailedFormat, r.err)
		a.view.UpdateState(func(s *web.State) { s.Message = msg })
		a.view.AddLog("error", msg)
		return
	case r.label.IsNone():
		return
	case !a.mood.IsNone():
		// a mood was entered after the job was submitted
		return
	}

	profile, err := a.registry.Get(r.label)
	if err != nil {
		a.logger.Warn("unknown label", "label", r.label, "error", err)
		return
	}

	msg := r.line
	if r.speechErr != nil {
		msg = fmt.Sprintf(speechFailedFormat, r.line, r.speechErr)
	}

	a.mood = r.label
	a.view.UpdateState(func(s *web.State) {
		s.Emotion = profile.Display()
		s.Label = string(r.label)
		s.Message = msg
		s.Released = false
		if profile.HasMusic() {
			s.Icon = profile.Track.Icon
			s.MusicTitle = profile.Track.Title
		}
	})
	a.view.AddLog("emotion", profile.Display())
	a.view.AddLog("speech", msg)
	a.logger.Info("mood entered", "mood", r.label, "line", r.index, "spoken", r.speechErr == nil)

	if profile.HasMusic() {
		a.player.SetBackground(filepath.Join(a.cfg.MusicDir(), profile.Track.File))
		a.view.UpdateState(func(s *web.State) { s.Paused = false })
	}

	if r.speechErr != nil {
		a.logger.Warn("speech synthesis failed", "error", r.speechErr)
		if a.cfg.AutoReleaseVoiceOnly && !profile.HasMusic() {
			a.release()
		}
		return
	}
	if err := a.player.PlayForeground(r.voicePath); err != nil {
		a.logger.Warn("play voice line", "error", err)
		if a.cfg.AutoReleaseVoiceOnly && !profile.HasMusic() {
			a.release()
		}
		return
	}
	// a new line always plays, even after a pause
	a.view.UpdateState(func(s *web.State) { s.Paused = false })
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

type nopPresenter struct{}

func (nopPresenter) UpdateState(func(*web.State)) {}
func (nopPresenter) AddLog(string, string)        {}
func (nopPresenter) SendCameraFrame([]byte)       {}
