package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/particlenet/internal/loop"
)

// Sample is one recorded frame.
type Sample struct {
	Frame        int     `json:"frame"`
	PointerX     float64 `json:"pointer_x"`
	PointerY     float64 `json:"pointer_y"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Links        int     `json:"links"`
	Repelled     int     `json:"repelled"`
	Displacement float64 `json:"displacement"`
	FrameTimeUS  int64   `json:"frame_time_us"`
}

func SampleOf(s loop.FrameStats) Sample {
	return Sample{
		Frame:        s.Frame,
		PointerX:     s.Pointer.X,
		PointerY:     s.Pointer.Y,
		Width:        int(s.Bounds.W),
		Height:       int(s.Bounds.H),
		Links:        s.Links,
		Repelled:     s.Repelled,
		Displacement: s.Displacement,
		FrameTimeUS:  s.Elapsed.Microseconds(),
	}
}

type Result struct {
	Scenario string
	Seed     int64
	Frames   int
	Samples  []Sample
	Metrics  map[string]float64
	Elapsed  time.Duration
}

// SimError reports the frame at which a run went wrong.
type SimError struct {
	Frame int
	Err   error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Err)
}

func (e *SimError) Unwrap() error { return e.Err }
