package helper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/teslashibe/emotional-helper/pkg/emotions"
	"github.com/teslashibe/emotional-helper/pkg/face"
	"github.com/teslashibe/emotional-helper/pkg/journal"
	"github.com/teslashibe/emotional-helper/pkg/tts"
)

// reaction is the outcome of one sampled frame.
type reaction struct {
	id        string
	label     emotions.Label
	index     int
	line      string
	voicePath string

	// err is a capture or classification failure; nothing else is set.
	err error
	// speechErr is a synthesis failure; label and line are still valid.
	speechErr error
}

// submit hands frame to a worker goroutine. Only one job runs at a time,
// so the worker may use the loop's rng and runtime files.
func (a *App) submit(ctx context.Context, frame []byte) {
	a.inFlight = true
	id := uuid.NewString()
	a.logger.Debug("sampling frame", "job", id, "tick", a.counter, "bytes", len(frame))

	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		r := a.react(ctx, id, frame)
		select {
		case a.results <- r:
		case <-ctx.Done():
		}
	}()
}

// react snapshots the frame, classifies it, picks a line and synthesizes it.
func (a *App) react(ctx context.Context, id string, frame []byte) reaction {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ReactionTimeout)
	defer cancel()

	r := reaction{id: id}

	framePath := a.cfg.FramePath()
	if err := os.MkdirAll(filepath.Dir(framePath), 0o755); err != nil {
		r.err = fmt.Errorf("create runtime dir: %w", err)
		return r
	}
	if err := os.WriteFile(framePath, frame, 0o644); err != nil {
		r.err = fmt.Errorf("save frame: %w", err)
		return r
	}

	if a.gate != nil {
		ok, err := a.gate.HasFace(frame)
		switch {
		case err != nil:
			a.logger.Debug("face gate failed, asking the cloud", "error", err)
		case !ok:
			return r
		}
	}

	label, err := face.ClassifyFile(ctx, a.faces, framePath)
	if err != nil {
		r.err = err
		return r
	}
	if label.IsNone() {
		a.logger.Debug("no emotion detected", "job", id)
		return r
	}

	idx, line, err := a.registry.Pick(label, a.rng)
	if err != nil {
		r.err = err
		return r
	}
	r.label, r.index, r.line = label, idx, line

	voicePath := a.cfg.VoicePath()
	if err := tts.SynthesizeToFile(ctx, a.speech, line, voicePath); err != nil {
		r.speechErr = err
	} else {
		r.voicePath = voicePath
	}

	a.record(ctx, r)
	return r
}

func (a *App) record(ctx context.Context, r reaction) {
	if a.journal == nil {
		return
	}
	e := journal.Entry{
		ID:     r.id,
		Label:  r.label,
		Line:   r.line,
		Spoken: r.speechErr == nil,
	}
	if r.speechErr != nil {
		e.Error = r.speechErr.Error()
	}
	if _, err := a.journal.Record(ctx, e); err != nil {
		a.logger.Warn("journal record failed", "error", err)
	}
}
