package svganim

import (
	"errors"
	"fmt"

	"github.com/srwiley/rasterx"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FillMode selects what happens to the animated value once an
// animation is finished.
type FillMode uint8

const (
	// FillRemove removes the override: the declared value is visible again.
	FillRemove FillMode = iota
	// FillFreeze keeps the last animated value.
	FillFreeze
)

var errIncompatibleValues = errors.New("incompatible animation values")

// Animation interpolates one attribute, or one property if IsCSS is true,
// of a target between two values.
// Call Update(dt) each frame; the computed value is pushed to the target.
//
// Numbers and lengths interpolate in user space (lengths sharing a unit keep it),
// colors blend in sRGB or linearRGB according to the target, transforms
// interpolate component wise and keywords switch at half time.
type Animation struct {
	Target    Target
	Namespace string
	Name      string
	IsCSS     bool
	From, To  Value
	Fill      FillMode

	tween *gween.Tween
	Done  bool
}

// NewAnimation returns an animation running for duration seconds.
// A nil easing function defaults to ease.Linear.
func NewAnimation(target Target, ns, name string, isCSS bool, from, to Value, duration float32, fn ease.TweenFunc) (*Animation, error) {
	if !compatible(from, to) {
		return nil, fmt.Errorf("%w: %s and %s", errIncompatibleValues, from, to)
	}
	if fn == nil {
		fn = ease.Linear
	}
	return &Animation{
		Target: target, Namespace: ns, Name: name, IsCSS: isCSS,
		From: from, To: to,
		tween: gween.New(0, 1, duration, fn),
	}, nil
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case Number, Length:
		return true
	}
	return false
}

func compatible(from, to Value) bool {
	if from == nil || to == nil {
		return false
	}
	if isNumeric(from) && isNumeric(to) {
		return true
	}
	switch from.(type) {
	case Color:
		_, ok := to.(Color)
		return ok
	case Transform:
		_, ok := to.(Transform)
		return ok
	case Keyword:
		_, ok := to.(Keyword)
		return ok
	}
	return false
}

func (a *Animation) push(v Value) {
	if a.IsCSS {
		a.Target.UpdatePropertyValue(a.Name, v)
	} else {
		a.Target.UpdateAttributeValue(a.Namespace, a.Name, v)
	}
}

// ValueAt returns the interpolated value at the progress p.
func (a *Animation) ValueAt(p float64) Value {
	switch from := a.From.(type) {
	case Color:
		to := a.To.(Color)
		if a.Target.UseLinearRGBColorInterpolation() {
			return Color{from.BlendLinearRgb(to.Color, p).Clamped()}
		}
		return Color{from.BlendRgb(to.Color, p).Clamped()}
	case Transform:
		m1, m2 := from.Matrix2D, a.To.(Transform).Matrix2D
		return Transform{rasterx.Matrix2D{
			A: lerp(m1.A, m2.A, p), B: lerp(m1.B, m2.B, p),
			C: lerp(m1.C, m2.C, p), D: lerp(m1.D, m2.D, p),
			E: lerp(m1.E, m2.E, p), F: lerp(m1.F, m2.F, p),
		}}
	case Keyword:
		if p < 0.5 {
			return from
		}
		return a.To
	}

	// numeric values
	l1, ok1 := a.From.(Length)
	l2, ok2 := a.To.(Length)
	if ok1 && ok2 && l1.Unit == l2.Unit {
		return Length{Value: lerp(l1.Value, l2.Value, p), Unit: l1.Unit}
	}
	return Number(lerp(a.userSpace(a.From), a.userSpace(a.To), p))
}

func (a *Animation) userSpace(v Value) float64 {
	switch v := v.(type) {
	case Number:
		return float64(v)
	case Length:
		mode := a.Target.PercentageInterpretation(a.Namespace, a.Name, a.IsCSS)
		return a.Target.SVGToUserSpace(v.Value, v.Unit, mode)
	}
	return 0
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Update advances the animation by dt seconds and pushes the new value.
// Once finished, the override is removed or frozen according to Fill,
// and Done is set.
func (a *Animation) Update(dt float32) {
	if a.Done {
		return
	}
	p, finished := a.tween.Update(dt)
	if finished && a.Fill == FillRemove {
		a.push(nil)
	} else {
		a.push(a.ValueAt(float64(p)))
	}
	a.Done = finished
}

// Reset rewinds the animation; the override is kept until the next Update.
func (a *Animation) Reset() {
	a.tween.Reset()
	a.Done = false
}

// Timeline advances a set of animations, dropping the finished ones.
type Timeline struct {
	animations []*Animation
}

// Add schedules a, which starts on the next Update.
func (tl *Timeline) Add(a *Animation) { tl.animations = append(tl.animations, a) }

// Len returns the number of running animations.
func (tl *Timeline) Len() int { return len(tl.animations) }

// Update advances every animation by dt seconds, in the order
// they were added.
func (tl *Timeline) Update(dt float32) {
	running := tl.animations[:0]
	for _, a := range tl.animations {
		a.Update(dt)
		if !a.Done {
			running = append(running, a)
		}
	}
	clear(tl.animations[len(running):])
	tl.animations = running
}
