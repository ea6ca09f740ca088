package vector3d

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"time"
)

// HeadlessConfig controls a run without a window.
type HeadlessConfig struct {
	// FPS paces the frames; 0 runs them back to back.
	FPS int
	// Frames stops the run after that many frames; 0 runs until ctx is done
	// or the viewer terminates.
	Frames int
}

// RunHeadless renders frames of v onto c. OnFrame, if set, is called after
// every frame. A terminated viewer ends the run without error.
func RunHeadless(ctx context.Context, v *Viewer, c Canvas, cfg HeadlessConfig, onFrame func(frame int) error) error {
	var tick <-chan time.Time
	if cfg.FPS > 0 {
		d := time.Second / time.Duration(cfg.FPS)
		if d <= 0 {
			return fmt.Errorf("invalid headless fps: %d", cfg.FPS)
		}
		t := time.NewTicker(d)
		defer t.Stop()
		tick = t.C
	}

	for frame := 1; ; frame++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := v.Frame(c); err != nil {
			if errors.Is(err, ErrTerminated) {
				return nil
			}
			return err
		}
		if onFrame != nil {
			if err := onFrame(frame); err != nil {
				return err
			}
		}
		if cfg.Frames > 0 && frame >= cfg.Frames {
			return nil
		}
	}
}

// Snapshot renders the given number of frames and writes the last one as PNG.
func Snapshot(ctx context.Context, v *Viewer, frames int, w io.Writer) error {
	if frames < 1 {
		frames = 1
	}
	p := v.Projection
	c := NewImageCanvas(int(p.Width), int(p.Height))
	if err := RunHeadless(ctx, v, c, HeadlessConfig{Frames: frames}, nil); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
