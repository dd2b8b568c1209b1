package svganim

import (
	"github.com/benoitkugler/svgscene/svgnode"
)

// Target is implemented by the elements an animation may drive.
type Target interface {
	// Owner returns the element holding the animated values.
	Owner() Owner

	// UpdatePropertyValue pushes the animated value of a CSS property.
	// A nil value removes the override.
	UpdatePropertyValue(name string, v Value)
	// UpdateAttributeValue pushes the animated value of an attribute.
	// A nil value removes the override.
	UpdateAttributeValue(ns, ln string, v Value)

	// PercentageInterpretation returns the reference used for
	// percentages of the given attribute or property.
	PercentageInterpretation(ns, an string, isCSS bool) PercentageMode
	// UseLinearRGBColorInterpolation returns true if colors
	// are blended in the linearRGB space, instead of sRGB.
	UseLinearRGBColorInterpolation() bool
	// SVGToUserSpace converts a length to user space units.
	SVGToUserSpace(v float64, unit UnitType, mode PercentageMode) float64

	// AddTargetListener registers l on the attribute (ns, an),
	// or on the property an if isCSS is true.
	AddTargetListener(ns, an string, isCSS bool, l Listener)
	// RemoveTargetListener is the inverse of AddTargetListener.
	RemoveTargetListener(ns, an string, isCSS bool, l Listener)
}

// RepaintScheduler is told when a node must be painted again.
type RepaintScheduler interface {
	ScheduleRepaint(n *svgnode.Node)
}

// RepaintFunc is a function implementing RepaintScheduler.
type RepaintFunc func(n *svgnode.Node)

func (f RepaintFunc) ScheduleRepaint(n *svgnode.Node) { f(n) }

// ErrorMode sets how an element reacts to invalid
// declared values.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips invalid values
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode outputs a warning when an invalid value is found
	WarnErrorMode
	// StrictErrorMode causes a error when an invalid value is found
	StrictErrorMode
)
