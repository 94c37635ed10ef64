// Package media is the decode/playback engine behind the asset core: fetchers
// for the document root, an image codec and a headless audio element.
package media

import (
	"fmt"
	"net/url"
	"time"
)

// Default is the built-in Engine: Codec for images, Element for audio.
type Default struct {
	*Codec
	fetcher  Fetcher
	autoplay bool
	now      func() time.Time
}

// Option configures a Default engine.
type Option func(*Default)

// WithAutoplay sets whether audio elements may start without a user gesture.
// Denied starts are rejected with ErrNotAllowed.
func WithAutoplay(allowed bool) Option {
	return func(d *Default) { d.autoplay = allowed }
}

// WithClock overrides the clock driving playback positions.
func WithClock(now func() time.Time) Option {
	return func(d *Default) { d.now = now }
}

// NewEngine creates an engine reading assets through f.
func NewEngine(f Fetcher, opts ...Option) *Default {
	d := &Default{
		Codec:    NewCodec(f),
		fetcher:  f,
		autoplay: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewAudio creates an element for src and starts loading it in the background.
func (d *Default) NewAudio(src string) (Audio, error) {
	if src == "" {
		return nil, ErrNoSource
	}
	if _, err := url.Parse(src); err != nil {
		return nil, fmt.Errorf("audio source %q: %w", src, err)
	}
	el := newElement(d.fetcher, d.autoplay, d.now)
	el.SetSrc(src)
	el.Load()
	return el, nil
}

var _ Engine = (*Default)(nil)
