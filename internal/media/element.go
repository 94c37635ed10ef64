package media

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

// Element is a headless media element. It fetches and probes its source in
// the background and keeps a wall-clock playback position; it does not drive
// an audio device.
type Element struct {
	fetcher  Fetcher
	prober   func([]byte) (Probe, error)
	autoplay bool
	now      func() time.Time

	mu      sync.Mutex
	src     string
	loop    bool
	volume  float64
	network NetworkState
	err     *MediaError
	probe   Probe
	ready   bool
	gen     uint64
	cancel  context.CancelFunc
	pending []chan error

	paused bool
	base   time.Duration // position when the clock was last anchored
	anchor time.Time     // zero unless the position is advancing
}

func newElement(f Fetcher, autoplay bool, now func() time.Time) *Element {
	return &Element{
		fetcher:  f,
		prober:   ProbeAudio,
		autoplay: autoplay,
		now:      now,
		volume:   1,
		paused:   true,
	}
}

func (e *Element) Src() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

func (e *Element) SetSrc(src string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.src = src
}

func (e *Element) Loop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loop
}

func (e *Element) SetLoop(loop bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reanchorLocked()
	e.loop = loop
}

func (e *Element) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Element) SetVolume(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return ErrVolumeRange
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = v
	return nil
}

func (e *Element) CurrentTime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

func (e *Element) SetCurrentTime(t time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t < 0 {
		t = 0
	}
	if d := e.probe.Duration; e.ready && d > 0 && t > d {
		t = d
	}
	e.base = t
	if !e.anchor.IsZero() {
		e.anchor = e.now()
	}
}

func (e *Element) Play() <-chan error {
	res := make(chan error, 1)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		res <- e.err
		return res
	}
	if !e.autoplay {
		res <- ErrNotAllowed
		return res
	}
	if e.network == NetworkEmpty {
		e.loadLocked()
		if e.err != nil {
			res <- e.err
			return res
		}
	}
	if e.endedLocked() {
		e.base = 0
		e.anchor = time.Time{}
	}
	e.paused = false
	if e.ready {
		if e.anchor.IsZero() {
			e.anchor = e.now()
		}
		res <- nil
		return res
	}
	e.pending = append(e.pending, res)
	return res
}

func (e *Element) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.base = e.positionLocked()
	e.anchor = time.Time{}
	e.paused = true
	e.settleLocked(ErrAborted)
}

func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused || e.endedLocked()
}

func (e *Element) Error() *MediaError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Element) NetworkState() NetworkState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.network
}

// Info returns what the last successful load learned about the payload.
func (e *Element) Info() (Probe, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.probe, e.ready
}

// Load aborts any in-flight fetch and pending play requests, resets the
// playback position and fetches the source again in the background.
func (e *Element) Load() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadLocked()
}

func (e *Element) loadLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.settleLocked(ErrAborted)
	e.gen++
	e.err = nil
	e.ready = false
	e.probe = Probe{}
	e.paused = true
	e.base = 0
	e.anchor = time.Time{}

	if e.src == "" {
		e.network = NetworkNoSource
		e.err = &MediaError{Code: MediaErrSrcNotSupported, Err: ErrNoSource}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.network = NetworkLoading
	go e.fetch(ctx, e.gen, e.src)
}

func (e *Element) fetch(ctx context.Context, gen uint64, src string) {
	var (
		probe Probe
		merr  *MediaError
	)
	data, err := e.fetcher.Fetch(ctx, src)
	if err != nil {
		merr = fetchError(err)
	} else if probe, err = e.prober(data); err != nil {
		merr = decodeError(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	e.cancel = nil
	if merr != nil {
		e.err = merr
		e.network = NetworkNoSource
		e.settleLocked(merr)
		return
	}
	e.probe = probe
	e.ready = true
	e.network = NetworkIdle
	if !e.paused {
		e.anchor = e.now()
	}
	e.settleLocked(nil)
}

func fetchError(err error) *MediaError {
	switch {
	case errors.Is(err, context.Canceled):
		return &MediaError{Code: MediaErrAborted, Err: err}
	case errors.Is(err, ErrNotFound):
		return &MediaError{Code: MediaErrSrcNotSupported, Err: err}
	default:
		return &MediaError{Code: MediaErrNetwork, Err: err}
	}
}

func decodeError(err error) *MediaError {
	if errors.Is(err, ErrUnsupportedFormat) {
		return &MediaError{Code: MediaErrSrcNotSupported, Err: err}
	}
	return &MediaError{Code: MediaErrDecode, Err: err}
}

// settleLocked resolves every pending play request with err.
func (e *Element) settleLocked(err error) {
	for _, ch := range e.pending {
		ch <- err
	}
	e.pending = nil
}

func (e *Element) reanchorLocked() {
	if e.anchor.IsZero() {
		return
	}
	e.base = e.positionLocked()
	e.anchor = e.now()
}

func (e *Element) positionLocked() time.Duration {
	pos := e.base
	if !e.anchor.IsZero() {
		pos += e.now().Sub(e.anchor)
	}
	d := e.probe.Duration
	if !e.ready || d <= 0 {
		return pos
	}
	if e.loop {
		return pos % d
	}
	if pos > d {
		return d
	}
	return pos
}

func (e *Element) endedLocked() bool {
	d := e.probe.Duration
	return e.ready && !e.loop && d > 0 && e.positionLocked() >= d
}
