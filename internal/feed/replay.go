package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/glassbrain/internal/record"
)

// Replay feeds a recorded run back through the holder, preserving the
// original packet spacing scaled by Speed.
type Replay struct {
	store *record.Store
	runID string
	speed float64
	loop  bool
}

func NewReplay(dataDir, runID string, speed float64, loop bool) *Replay {
	if speed <= 0 {
		speed = 1
	}
	return &Replay{
		store: record.New(dataDir),
		runID: runID,
		speed: speed,
		loop:  loop,
	}
}

func (r *Replay) Name() string { return "replay" }

func (r *Replay) Run(ctx context.Context, h *Holder) error {
	runID := r.runID
	if runID == "" {
		latest, err := r.store.Latest()
		if err != nil {
			return err
		}
		runID = latest
	}
	meta, err := r.store.Load(runID)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	fmt.Printf("feed: replaying %s (%d packets, %.1fs)\n", runID, meta.Packets, meta.Duration)

	for {
		if err := r.playOnce(ctx, h, runID); err != nil {
			return err
		}
		if !r.loop {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

func (r *Replay) playOnce(ctx context.Context, h *Holder, runID string) error {
	reader, err := r.store.Open(runID)
	if err != nil {
		return err
	}
	defer reader.Close()

	prev := 0.0
	for {
		frame, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}

		if wait := frame.T - prev; wait > 0 {
			if !sleepCtx(ctx, time.Duration(wait/r.speed*float64(time.Second))) {
				return ctx.Err()
			}
		}
		prev = frame.T
		h.Publish(frame.Snap)
	}
}
