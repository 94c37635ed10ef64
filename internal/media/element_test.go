package media

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// stubFetcher serves fixed payloads. Locations in block wait for their
// context or for release.
type stubFetcher struct {
	mu      sync.Mutex
	data    map[string][]byte
	errs    map[string]error
	block   map[string]bool
	release chan struct{}
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		data:    map[string][]byte{},
		errs:    map[string]error{},
		block:   map[string]bool{},
		release: make(chan struct{}),
	}
}

func (f *stubFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	f.mu.Lock()
	blocked := f.block[location]
	data, err := f.data[location], f.errs[location]
	f.mu.Unlock()
	if blocked {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.release:
		}
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

const testDuration = 10 * time.Second

func newTestElement(f Fetcher, autoplay bool) (*Element, *testClock) {
	clock := &testClock{t: time.UnixMilli(1000)}
	e := newElement(f, autoplay, clock.Now)
	e.prober = func(data []byte) (Probe, error) {
		if string(data) == "garbage" {
			return Probe{}, ErrUnsupportedFormat
		}
		if string(data) == "truncated" {
			return Probe{}, errors.New("unexpected EOF")
		}
		return Probe{Format: FormatOgg, SampleRate: 44100, Channels: 2, Duration: testDuration}, nil
	}
	return e, clock
}

// waitSettled waits until the element leaves the loading state.
func waitSettled(t *testing.T, e *Element) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for e.NetworkState() == NetworkLoading {
		if time.Now().After(deadline) {
			t.Fatal("element still loading")
		}
		time.Sleep(time.Millisecond)
	}
}

func recv(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("play result not delivered")
		return nil
	}
}

func loadedElement(t *testing.T) (*Element, *testClock) {
	t.Helper()
	f := newStubFetcher()
	f.data["./a.ogg?v=1"] = []byte("ok")
	e, clock := newTestElement(f, true)
	e.SetSrc("./a.ogg?v=1")
	e.Load()
	waitSettled(t, e)
	if e.Error() != nil {
		t.Fatalf("load failed: %v", e.Error())
	}
	return e, clock
}

func TestElement_Defaults(t *testing.T) {
	e, _ := newTestElement(newStubFetcher(), true)
	if e.Volume() != 1 || e.Loop() || !e.Paused() || e.CurrentTime() != 0 {
		t.Errorf("unexpected defaults: volume=%v loop=%v paused=%v pos=%v",
			e.Volume(), e.Loop(), e.Paused(), e.CurrentTime())
	}
	if e.NetworkState() != NetworkEmpty {
		t.Errorf("network = %v, want empty", e.NetworkState())
	}
}

func TestElement_LoadSuccess(t *testing.T) {
	e, _ := loadedElement(t)

	if e.NetworkState() != NetworkIdle {
		t.Errorf("network = %v, want idle", e.NetworkState())
	}
	p, ok := e.Info()
	if !ok || p.Duration != testDuration {
		t.Errorf("Info() = %+v, %v", p, ok)
	}
}

func TestElement_LoadFailures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
		want MediaErrorCode
	}{
		{"not found", nil, nil, MediaErrSrcNotSupported},
		{"network", nil, errors.New("connection reset"), MediaErrNetwork},
		{"unsupported", []byte("garbage"), nil, MediaErrSrcNotSupported},
		{"decode", []byte("truncated"), nil, MediaErrDecode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newStubFetcher()
			f.data["./x.ogg"] = tc.data
			f.errs["./x.ogg"] = tc.err
			e, _ := newTestElement(f, true)
			e.SetSrc("./x.ogg")
			e.Load()
			waitSettled(t, e)

			merr := e.Error()
			if merr == nil || merr.Code != tc.want {
				t.Fatalf("Error() = %v, want code %v", merr, tc.want)
			}
			if e.NetworkState() != NetworkNoSource {
				t.Errorf("network = %v, want no_source", e.NetworkState())
			}
			if err := recv(t, e.Play()); err == nil {
				t.Error("Play on failed element resolved without error")
			}
		})
	}
}

func TestElement_EmptySource(t *testing.T) {
	e, _ := newTestElement(newStubFetcher(), true)
	e.Load()

	merr := e.Error()
	if merr == nil || merr.Code != MediaErrSrcNotSupported || !errors.Is(merr, ErrNoSource) {
		t.Fatalf("Error() = %v, want src not supported / no source", merr)
	}
	if e.NetworkState() != NetworkNoSource {
		t.Errorf("network = %v, want no_source", e.NetworkState())
	}
}

func TestElement_PlayWaitsForLoad(t *testing.T) {
	f := newStubFetcher()
	f.data["./a.ogg"] = []byte("ok")
	f.block["./a.ogg"] = true
	e, _ := newTestElement(f, true)
	e.SetSrc("./a.ogg")

	// Play on an element that never loaded starts the load.
	res := e.Play()
	if e.NetworkState() != NetworkLoading {
		t.Fatalf("network = %v, want loading", e.NetworkState())
	}
	select {
	case err := <-res:
		t.Fatalf("play resolved before load: %v", err)
	default:
	}

	close(f.release)
	if err := recv(t, res); err != nil {
		t.Fatalf("play = %v, want nil", err)
	}
	if e.Paused() {
		t.Error("paused after successful play")
	}
}

func TestElement_PauseAbortsPendingPlay(t *testing.T) {
	f := newStubFetcher()
	f.data["./a.ogg"] = []byte("ok")
	f.block["./a.ogg"] = true
	e, _ := newTestElement(f, true)
	e.SetSrc("./a.ogg")
	e.Load()

	res := e.Play()
	e.Pause()

	if err := recv(t, res); !errors.Is(err, ErrAborted) {
		t.Fatalf("play = %v, want ErrAborted", err)
	}
	close(f.release)
}

func TestElement_AutoplayDenied(t *testing.T) {
	f := newStubFetcher()
	f.data["./a.ogg"] = []byte("ok")
	e, _ := newTestElement(f, false)
	e.SetSrc("./a.ogg")
	e.Load()
	waitSettled(t, e)

	if err := recv(t, e.Play()); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("play = %v, want ErrNotAllowed", err)
	}
	if !e.Paused() {
		t.Error("denied play unpaused the element")
	}
}

func TestElement_VolumeRange(t *testing.T) {
	e, _ := newTestElement(newStubFetcher(), true)

	if err := e.SetVolume(0.5); err != nil {
		t.Fatalf("SetVolume(0.5) = %v", err)
	}
	for _, v := range []float64{-0.1, 1.01} {
		if err := e.SetVolume(v); !errors.Is(err, ErrVolumeRange) {
			t.Errorf("SetVolume(%v) = %v, want ErrVolumeRange", v, err)
		}
	}
	if e.Volume() != 0.5 {
		t.Errorf("volume = %v after rejected values, want 0.5", e.Volume())
	}
}

func TestElement_PositionAdvances(t *testing.T) {
	e, clock := loadedElement(t)

	if err := recv(t, e.Play()); err != nil {
		t.Fatalf("play: %v", err)
	}
	clock.Advance(3 * time.Second)
	if got := e.CurrentTime(); got != 3*time.Second {
		t.Errorf("position = %v, want 3s", got)
	}

	e.Pause()
	clock.Advance(5 * time.Second)
	if got := e.CurrentTime(); got != 3*time.Second {
		t.Errorf("position = %v while paused, want 3s", got)
	}

	e.SetCurrentTime(0)
	if got := e.CurrentTime(); got != 0 {
		t.Errorf("position = %v after rewind, want 0", got)
	}
}

func TestElement_EndsWithoutLoop(t *testing.T) {
	e, clock := loadedElement(t)

	recv(t, e.Play())
	clock.Advance(testDuration + 5*time.Second)

	if got := e.CurrentTime(); got != testDuration {
		t.Errorf("position = %v, want clamped to %v", got, testDuration)
	}
	if !e.Paused() {
		t.Error("ended element reports playing")
	}

	// Playing an ended element restarts it.
	recv(t, e.Play())
	if got := e.CurrentTime(); got != 0 {
		t.Errorf("position = %v after replay, want 0", got)
	}
}

func TestElement_LoopWraps(t *testing.T) {
	e, clock := loadedElement(t)
	e.SetLoop(true)

	recv(t, e.Play())
	clock.Advance(25 * time.Second)

	if got := e.CurrentTime(); got != 5*time.Second {
		t.Errorf("position = %v, want 5s", got)
	}
	if e.Paused() {
		t.Error("looping element reports paused")
	}
}

func TestElement_ReloadDiscardsStaleFetch(t *testing.T) {
	f := newStubFetcher()
	f.data["./a.ogg?v=1"] = []byte("ok")
	f.block["./a.ogg?v=1"] = true
	f.data["./a.ogg?v=2"] = []byte("ok")
	e, _ := newTestElement(f, true)
	e.SetSrc("./a.ogg?v=1")
	e.Load()
	res := e.Play()

	e.SetSrc("./a.ogg?v=2")
	e.Load()
	if err := recv(t, res); !errors.Is(err, ErrAborted) {
		t.Fatalf("pending play = %v, want ErrAborted", err)
	}

	waitSettled(t, e)
	// Give the cancelled first fetch time to return.
	time.Sleep(20 * time.Millisecond)
	if e.Error() != nil {
		t.Fatalf("stale fetch leaked an error: %v", e.Error())
	}
	if e.NetworkState() != NetworkIdle || e.Src() != "./a.ogg?v=2" {
		t.Errorf("network=%v src=%q, want idle on v=2", e.NetworkState(), e.Src())
	}
}

func TestElement_ReloadClearsError(t *testing.T) {
	f := newStubFetcher()
	e, _ := newTestElement(f, true)
	e.SetSrc("./a.ogg?v=1")
	e.Load()
	waitSettled(t, e)
	if e.Error() == nil {
		t.Fatal("expected load failure")
	}

	f.mu.Lock()
	f.data["./a.ogg?v=2"] = []byte("ok")
	f.mu.Unlock()
	e.SetSrc("./a.ogg?v=2")
	e.Load()
	waitSettled(t, e)

	if e.Error() != nil {
		t.Fatalf("Error() = %v after successful reload", e.Error())
	}
	if err := recv(t, e.Play()); err != nil {
		t.Fatalf("play = %v, want nil", err)
	}
}
