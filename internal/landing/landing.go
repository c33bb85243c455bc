// Package landing holds the page-level state of the landing document: which
// elements are revealed, whether the back button shows, and the lazily built
// solar-system scene. It has no rendering dependencies.
package landing

import (
	"errors"
	"log/slog"

	"github.com/iburimskiy/solar-system/internal/bodies"
	"github.com/iburimskiy/solar-system/internal/config"
	"github.com/iburimskiy/solar-system/internal/errs"
	"github.com/iburimskiy/solar-system/internal/page"
	"github.com/iburimskiy/solar-system/internal/scene"
	"github.com/iburimskiy/solar-system/internal/scroll"
)

type State struct {
	log     *slog.Logger
	page    *page.Page
	reveal  scroll.Reveal
	missing map[string]bool
	back    bool

	system    *scene.Context
	systemErr error
}

func New(log *slog.Logger, p *page.Page) *State {
	return &State{log: log, page: p, missing: make(map[string]bool)}
}

func (s *State) Page() *page.Page { return s.page }

// SetPage swaps in a new layout, e.g. after a resize. Reveal flags survive.
func (s *State) SetPage(p *page.Page) { s.page = p }

// Target looks up a page element. A missing element disables only the feature
// asking for it, and is logged once.
func (s *State) Target(id string) (*page.Element, bool) {
	el, err := s.page.Lookup(id)
	if err != nil {
		var tnf *errs.TargetNotFoundError
		if errors.As(err, &tnf) && !s.missing[id] {
			s.missing[id] = true
			s.log.Error("page feature disabled", "target", tnf.Target)
		}
		return nil, false
	}
	return el, true
}

// OnScroll applies the scroll-position effects that are not pure drawing:
// revealing descriptions and toggling the back button. now is in milliseconds.
func (s *State) OnScroll(offset, now float64) {
	vh := s.page.ViewportH
	for _, el := range s.page.Query(page.DescriptionClass) {
		s.reveal.Observe(el.ID, el.Rect(offset), vh, now)
	}
	if section, ok := s.Target(page.SolarSection); ok {
		s.back = scroll.InView(section.Rect(offset), vh)
	} else {
		s.back = false
	}
}

// BackVisible reports whether the back-to-top button is shown.
func (s *State) BackVisible() bool { return s.back }

// DescriptionAlpha is the fade-in opacity of a description at time now.
func (s *State) DescriptionAlpha(id string, now, fade float64) float64 {
	return s.reveal.Alpha(id, now, fade)
}

// System is the interactive scene, nil until loaded.
func (s *State) System() *scene.Context { return s.system }

// SystemErr is the reason the last load failed.
func (s *State) SystemErr() error { return s.systemErr }

// LoadSystem builds the interactive scene and attaches it to d. A configuration
// error leaves the page running without it.
func (s *State) LoadSystem(cat bodies.Catalog, settings config.Settings, d *scene.Driver) error {
	if s.system != nil {
		return nil
	}
	sys, err := scene.NewSystem(cat, settings)
	if err != nil {
		s.log.Error("solar system scene aborted", "err", err)
		s.systemErr = err
		return err
	}
	s.system = sys
	s.systemErr = nil
	d.Attach(sys)
	s.log.Info("solar system loaded", "bodies", len(sys.Meshes))
	return nil
}
