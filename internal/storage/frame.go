package storage

import (
	"math"
	"math/cmplx"
	"strconv"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/atom/internal/anim"
)

// Frame is one recorded tick of the animation state.
type Frame struct {
	Frame     int     `json:"frame"`
	T         float64 `json:"t"`
	Theta     float64 `json:"theta"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	RotationY float64 `json:"rot_y"`
	UTime     float64 `json:"u_time"`
}

func (f Frame) record() []string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		strconv.Itoa(f.Frame),
		format(f.T),
		format(f.Theta),
		format(f.X),
		format(f.Y),
		format(f.Z),
		format(f.RotationY),
		format(f.UTime),
	}
}

func parseFrame(record []string) (Frame, error) {
	n, err := strconv.Atoi(record[0])
	if err != nil {
		return Frame{}, err
	}
	v, err := parseFloats(record[1:])
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Frame:     n,
		T:         v[0],
		Theta:     v[1],
		X:         v[2],
		Y:         v[3],
		Z:         v[4],
		RotationY: v[5],
		UTime:     v[6],
	}, nil
}

func Capture(s *anim.State) Frame {
	e := s.Scene.Electron.Position
	return Frame{
		Frame:     s.Frame,
		T:         s.Elapsed,
		Theta:     s.Orbit.Theta,
		X:         e.X,
		Y:         e.Y,
		Z:         e.Z,
		RotationY: s.Scene.Proton.RotationY,
		UTime:     s.Scene.Proton.Material.Uniforms.Time,
	}
}

// Recorder is a loop observer that keeps every tick.
type Recorder struct {
	Frames []Frame
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{Frames: make([]Frame, 0, capacity)}
}

func (r *Recorder) OnTick(s *anim.State) {
	r.Frames = append(r.Frames, Capture(s))
}

// Series extracts one column for plotting.
func Series(frames []Frame, pick func(Frame) float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = pick(f)
	}
	return out
}

// Summarize reports the orbit's radius range, the covered angle and, once a
// full cycle is recorded, the orbit period measured from the x spectrum.
func Summarize(frames []Frame) map[string]float64 {
	summary := map[string]float64{}
	if len(frames) == 0 {
		return summary
	}

	minR, maxR := math.Inf(1), math.Inf(-1)
	for _, f := range frames {
		r := math.Hypot(f.X, f.Z)
		minR = math.Min(minR, r)
		maxR = math.Max(maxR, r)
	}
	last := frames[len(frames)-1]

	summary["radius_min"] = minR
	summary["radius_max"] = maxR
	summary["revolutions"] = last.Theta / (2 * math.Pi)
	summary["final_rot_y"] = last.RotationY
	summary["final_t"] = last.T
	if period, ok := DominantPeriod(Series(frames, func(f Frame) float64 { return f.X })); ok {
		summary["period_frames"] = period
	}
	return summary
}

// DominantPeriod returns the period, in samples, of the strongest frequency
// in xs. The peak bin is refined by parabolic interpolation. It reports false
// for a flat series or when less than one cycle was sampled.
func DominantPeriod(xs []float64) (float64, bool) {
	n := len(xs)
	if n < 4 {
		return 0, false
	}

	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)
	centered := make([]float64, n)
	for i, x := range xs {
		centered[i] = x - mean
	}

	spectrum := fft.FFTReal(centered)
	mag := func(k int) float64 { return cmplx.Abs(spectrum[k]) }

	peak := 1
	for k := 2; k <= n/2; k++ {
		if mag(k) > mag(peak) {
			peak = k
		}
	}
	if mag(peak) < 1e-9 {
		return 0, false
	}

	bin := float64(peak)
	if peak+1 <= n/2 {
		a, b, c := mag(peak-1), mag(peak), mag(peak+1)
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	if bin < 1 {
		return 0, false
	}
	return float64(n) / bin, true
}
