package media

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"
)

// Mock is a thread-safe in-memory Engine for tests. Every location decodes
// successfully unless it was marked missing.
type Mock struct {
	mu       sync.Mutex
	missing  map[string]bool
	badAudio map[string]bool
	delay    time.Duration
	decodes  int
	audios   map[string]*MockAudio // keyed by location without query
}

// NewMock creates an empty mock engine.
func NewMock() *Mock {
	return &Mock{
		missing:  make(map[string]bool),
		badAudio: make(map[string]bool),
		audios:   make(map[string]*MockAudio),
	}
}

// SetMissing makes image decodes of location fail with ErrNotFound.
func (m *Mock) SetMissing(location string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing[stripQuery(location)] = true
}

// SetBadAudio makes NewAudio for location fail.
func (m *Mock) SetBadAudio(location string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badAudio[stripQuery(location)] = true
}

// SetDelay makes every image decode take d.
func (m *Mock) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Decodes returns how many image decodes were attempted.
func (m *Mock) Decodes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decodes
}

// Audio returns the handle created for location, ignoring the query string.
func (m *Mock) Audio(location string) *MockAudio {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.audios[stripQuery(location)]
}

func (m *Mock) DecodeImage(ctx context.Context, location string) (*Image, error) {
	m.mu.Lock()
	m.decodes++
	delay := m.delay
	missing := m.missing[stripQuery(location)]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if missing {
		return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
	}
	return &Image{Location: location, Format: "png", Data: image.NewRGBA(image.Rect(0, 0, 4, 3))}, nil
}

func (m *Mock) NewAudio(src string) (Audio, error) {
	if src == "" {
		return nil, ErrNoSource
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.badAudio[stripQuery(src)] {
		return nil, fmt.Errorf("audio source %q: %w", src, ErrUnsupportedFormat)
	}
	a := NewMockAudio(src)
	m.audios[stripQuery(src)] = a
	return a, nil
}

func stripQuery(location string) string {
	p, _, _ := strings.Cut(location, "?")
	return p
}

// MockAudio records every command it receives.
type MockAudio struct {
	mu      sync.Mutex
	src     string
	loop    bool
	volume  float64
	pos     time.Duration
	paused  bool
	err     *MediaError
	network NetworkState
	playErr error
	calls   []string
}

// NewMockAudio creates a healthy, paused handle.
func NewMockAudio(src string) *MockAudio {
	return &MockAudio{src: src, volume: 1, paused: true, network: NetworkIdle}
}

// Fail puts the handle in the failed-load state.
func (a *MockAudio) Fail(code MediaErrorCode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = &MediaError{Code: code}
	a.network = NetworkNoSource
}

// SetNetworkState overrides the reported network state.
func (a *MockAudio) SetNetworkState(s NetworkState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.network = s
}

// SetPlayError makes subsequent Play calls resolve with err.
func (a *MockAudio) SetPlayError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playErr = err
}

// SetPosition moves the playback position without recording a call.
func (a *MockAudio) SetPosition(t time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pos = t
}

// Calls returns the recorded command names in order.
func (a *MockAudio) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.calls))
	copy(out, a.calls)
	return out
}

// Count returns how many times the named command was recorded.
func (a *MockAudio) Count(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (a *MockAudio) record(name string) { a.calls = append(a.calls, name) }

func (a *MockAudio) Src() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.src
}

func (a *MockAudio) SetSrc(src string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("setSrc")
	a.src = src
}

func (a *MockAudio) Loop() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loop
}

func (a *MockAudio) SetLoop(loop bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("setLoop")
	a.loop = loop
}

func (a *MockAudio) Volume() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.volume
}

func (a *MockAudio) SetVolume(v float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("setVolume")
	if v < 0 || v > 1 {
		return ErrVolumeRange
	}
	a.volume = v
	return nil
}

func (a *MockAudio) CurrentTime() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

func (a *MockAudio) SetCurrentTime(t time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("setCurrentTime")
	a.pos = t
}

func (a *MockAudio) Play() <-chan error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("play")
	res := make(chan error, 1)
	if a.playErr != nil {
		res <- a.playErr
		return res
	}
	a.paused = false
	res <- nil
	return res
}

func (a *MockAudio) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("pause")
	a.paused = true
}

func (a *MockAudio) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

// Load clears any failure, as if the reload succeeded.
func (a *MockAudio) Load() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record("load")
	a.err = nil
	a.network = NetworkIdle
	a.pos = 0
}

func (a *MockAudio) Error() *MediaError {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *MockAudio) NetworkState() NetworkState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.network
}

var (
	_ Engine = (*Mock)(nil)
	_ Audio  = (*MockAudio)(nil)
	_ Audio  = (*Element)(nil)
)
