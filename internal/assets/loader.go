package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/brianhealey/assetd/internal/media"
	"github.com/brianhealey/assetd/internal/models"
	"github.com/google/uuid"
)

// outcome is the terminal result of loading one manifest entry.
type outcome struct {
	kind     models.AssetKind
	key      string
	location string
	image    *media.Image
	audio    media.Audio
	err      error
}

// task is one manifest entry with its resolved location.
type task struct {
	kind     models.AssetKind
	key      string
	location string
}

// LoadAssets runs the load pass: every manifest entry is attempted exactly
// once, failures are logged and left out of the Registry, and Loaded turns
// true when all entries finished. The pass runs once per Manager; repeated or
// concurrent calls wait for it and return the same report.
func (m *Manager) LoadAssets(ctx context.Context) models.LoadReport {
	m.loadOnce.Do(func() {
		m.report = m.loadPass(ctx)
	})
	return m.report
}

func (m *Manager) loadPass(ctx context.Context) models.LoadReport {
	report := models.LoadReport{
		ID:      uuid.NewString(),
		Started: m.now(),
		Failed:  []models.FailedAsset{},
	}
	slog.Info("assets: load pass started", "id", report.ID,
		"images", len(m.manifests.Images), "sounds", len(m.manifests.Sounds), "workers", m.workers)

	tasks := m.tasks(report.Started)
	results := make(chan outcome, len(tasks))
	sem := make(chan struct{}, m.workers)
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- m.run(ctx, t)
		}()
	}
	wg.Wait()
	close(results)

	for o := range results {
		if o.err != nil {
			slog.Warn("assets: failed to load "+string(o.kind), "key", o.key, "path", o.location, "err", o.err)
			report.Failed = append(report.Failed, models.FailedAsset{
				Kind: o.kind, Key: o.key, Location: o.location, Err: o.err.Error(),
			})
			continue
		}
		switch o.kind {
		case models.KindImage:
			if m.reg.addImage(o.key, o.image) {
				report.Images++
			}
		case models.KindSound:
			if m.reg.addSound(o.key, o.audio) {
				report.Sounds++
			}
		}
	}
	sort.Slice(report.Failed, func(i, j int) bool {
		a, b := report.Failed[i], report.Failed[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Key < b.Key
	})

	m.reg.markLoaded()
	report.Duration = m.now().Sub(report.Started)
	slog.Info("assets: load pass complete", "id", report.ID,
		"images", report.Images, "sounds", report.Sounds, "failed", len(report.Failed), "duration", report.Duration)

	r := report
	m.publish(models.Event{Type: models.EventLoaded, Report: &r})
	return report
}

// tasks builds one task per manifest entry. All sounds of a pass share one
// cache token taken at the start of the pass.
func (m *Manager) tasks(started time.Time) []task {
	tasks := make([]task, 0, m.manifests.Len())
	for key, rel := range m.manifests.Images {
		tasks = append(tasks, task{kind: models.KindImage, key: key, location: Resolve(rel)})
	}
	for key, rel := range m.manifests.Sounds {
		tasks = append(tasks, task{kind: models.KindSound, key: key, location: withToken(Resolve(rel), started)})
	}
	return tasks
}

// run loads one entry. A panic in the engine becomes a failed outcome.
func (m *Manager) run(ctx context.Context, t task) (o outcome) {
	o = outcome{kind: t.kind, key: t.key, location: t.location}
	defer func() {
		if r := recover(); r != nil {
			o.image, o.audio = nil, nil
			o.err = fmt.Errorf("panic: %v", r)
		}
	}()

	switch t.kind {
	case models.KindImage:
		o.image, o.err = m.engine.DecodeImage(ctx, t.location)
	case models.KindSound:
		o.audio, o.err = m.engine.NewAudio(t.location)
	}
	if o.err == nil && o.image == nil && o.audio == nil {
		o.err = errors.New("engine returned no handle")
	}
	return o
}
