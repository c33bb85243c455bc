package page

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/solar-system/internal/errs"
	"github.com/iburimskiy/solar-system/internal/scroll"
)

var names = []string{"sun", "mercury", "venus", "earth"}

func TestLayoutOrder(t *testing.T) {
	p := Layout(names, 1280, 800, 260)

	intro, err := p.Lookup(Intro)
	require.NoError(t, err)
	assert.Equal(t, 0.0, intro.Y)
	assert.Equal(t, 800.0, intro.H)

	prevY := intro.Y + intro.H
	for _, n := range names {
		sec, err := p.Lookup(SectionID(n))
		require.NoError(t, err)
		assert.Equal(t, prevY, sec.Y, n)
		prevY = sec.Y + sec.H

		c, err := p.Lookup(CanvasID(n))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.Y, sec.Y)
		assert.LessOrEqual(t, c.Y+c.H, sec.Y+sec.H)
	}

	solar, err := p.Lookup(SolarSection)
	require.NoError(t, err)
	assert.Equal(t, prevY, solar.Y)
	assert.Equal(t, solar.Y+solar.H, p.Height)
	assert.Equal(t, p.Height-800, p.MaxScroll())

	assert.Len(t, p.Query(DescriptionClass), len(names))
	assert.Len(t, p.Query(CanvasClass), len(names))
}

func TestLookupMissing(t *testing.T) {
	p := Layout(names, 1280, 800, 260)
	_, err := p.Lookup(CanvasID("pluto"))
	var tnf *errs.TargetNotFoundError
	require.True(t, errors.As(err, &tnf))
	assert.Equal(t, "pluto-canvas", tnf.Target)
}

func TestRectFollowsScroll(t *testing.T) {
	p := Layout(names, 1280, 800, 260)
	solar, err := p.Lookup(SolarSection)
	require.NoError(t, err)

	assert.False(t, scroll.InView(solar.Rect(0), p.ViewportH))
	assert.True(t, scroll.InView(solar.Rect(p.MaxScroll()), p.ViewportH))

	back, err := p.Lookup(BackButton)
	require.NoError(t, err)
	assert.Equal(t, back.Rect(0), back.Rect(5000))
}

func TestContains(t *testing.T) {
	p := Layout(names, 1280, 800, 260)
	btn, err := p.Lookup(LoadButton)
	require.NoError(t, err)

	off := p.MaxScroll()
	cx := btn.X + btn.W/2
	cy := btn.ScreenY(off) + btn.H/2
	assert.True(t, btn.Contains(off, cx, cy))
	assert.False(t, btn.Contains(0, cx, cy))
	assert.False(t, btn.Contains(off, btn.X-1, cy))
}

func TestEmptyPage(t *testing.T) {
	p := Layout(nil, 640, 480, 200)
	assert.Equal(t, 960.0, p.Height)
	assert.Empty(t, p.Query(DescriptionClass))
}
