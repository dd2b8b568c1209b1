package svganim

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/srwiley/rasterx"
)

type attrKey struct{ ns, ln string }

// lengthAttributes are the geometry attributes holding a single length.
var lengthAttributes = map[string]bool{
	"x": true, "y": true, "width": true, "height": true,
	"rx": true, "ry": true, "cx": true, "cy": true, "r": true,
	"x1": true, "y1": true, "x2": true, "y2": true,
}

// presentationAttributes are the properties which may also be
// declared as attributes.
var presentationAttributes = map[string]bool{
	"fill": true, "stroke": true,
	"opacity": true, "fill-opacity": true, "stroke-opacity": true,
	"stroke-width": true, "stroke-miterlimit": true,
	"stroke-dasharray": true, "stroke-dashoffset": true,
	"stroke-linejoin": true, "stroke-linecap": true,
	"stroke-leadlinecap": true, "stroke-linegap": true,
	"fill-rule": true, "visibility": true, "display": true,
	"font-size": true, "baseline-shift": true, "color-interpolation": true,
}

// Element is a Target bound to a scene node: every declared or animated
// change is applied onto the node, then the listeners of the changed
// value are notified and a repaint is scheduled.
//
// The effective value of an attribute is its animated value if any,
// else its declared value, else its initial value. For properties, the
// style declarations take precedence over the presentation attributes.
type Element struct {
	// Tag is the SVG element name (rect, circle, ellipse, line, path,
	// polyline, polygon, text, image, g, svg), which selects the
	// geometry attributes used.
	Tag  string
	Node *svgnode.Node

	// Units provides the viewport and the inherited font size.
	Units     UnitContext
	ErrorMode ErrorMode
	Scheduler RepaintScheduler // optional

	attrs map[attrKey]string
	style map[string]string

	attrSlots map[attrKey]*AnimatedValue
	propSlots map[string]*AnimatedValue

	attrValues map[attrKey]Value // animated
	propValues map[string]Value  // animated

	baseTransform rasterx.Matrix2D
	fontSize      float64 // computed
}

var _ Target = (*Element)(nil)

// NewElement binds a new element to node. The current node transform
// is used when no transform attribute is specified.
func NewElement(tag string, node *svgnode.Node, units UnitContext) *Element {
	e := &Element{
		Tag:           tag,
		Node:          node,
		Units:         units,
		attrs:         make(map[attrKey]string),
		style:         make(map[string]string),
		attrSlots:     make(map[attrKey]*AnimatedValue),
		propSlots:     make(map[string]*AnimatedValue),
		attrValues:    make(map[attrKey]Value),
		propValues:    make(map[string]Value),
		baseTransform: node.Transform,
	}
	e.apply()
	return e
}

func (e *Element) Owner() Owner { return e }

// HasAttributeNS returns true if the attribute is declared.
func (e *Element) HasAttributeNS(ns, ln string) bool {
	_, ok := e.attrs[attrKey{ns, ln}]
	return ok
}

// HasProperty returns true if the property is declared in the style
// or as a presentation attribute.
func (e *Element) HasProperty(name string) bool {
	if _, ok := e.style[name]; ok {
		return true
	}
	return presentationAttributes[name] && e.HasAttributeNS("", name)
}

// AttributeNS returns the declared value of an attribute.
func (e *Element) AttributeNS(ns, ln string) (string, bool) {
	v, ok := e.attrs[attrKey{ns, ln}]
	return v, ok
}

// Property returns the declared style value of a property.
func (e *Element) Property(name string) (string, bool) {
	v, ok := e.style[name]
	return v, ok
}

// AnimatedValue returns the store of the attribute (ns, ln),
// created on first use.
func (e *Element) AnimatedValue(ns, ln string) *AnimatedValue {
	k := attrKey{ns, ln}
	v := e.attrSlots[k]
	if v == nil {
		v = NewAnimatedValue(e, ns, ln)
		e.attrSlots[k] = v
	}
	return v
}

// AnimatedProperty returns the store of the property name,
// created on first use.
func (e *Element) AnimatedProperty(name string) *AnimatedValue {
	v := e.propSlots[name]
	if v == nil {
		v = NewAnimatedProperty(e, name)
		e.propSlots[name] = v
	}
	return v
}

// handle applies the error mode to err.
func (e *Element) handle(err error) error {
	if err == nil {
		return nil
	}
	switch e.ErrorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		log.Println(err)
	}
	return nil
}

// SetAttributeNS declares an attribute. An invalid value is
// rejected in StrictErrorMode, and ignored when painting otherwise.
func (e *Element) SetAttributeNS(ns, ln, value string) error {
	if err := e.handle(validate(ns, ln, value)); err != nil {
		return err
	}
	e.attrs[attrKey{ns, ln}] = value
	e.attributeChanged(ns, ln)
	return nil
}

// RemoveAttributeNS removes a declared attribute. Removing
// an absent attribute is a no-op.
func (e *Element) RemoveAttributeNS(ns, ln string) {
	k := attrKey{ns, ln}
	if _, ok := e.attrs[k]; !ok {
		return
	}
	delete(e.attrs, k)
	e.attributeChanged(ns, ln)
}

// SetStyle replaces the style declarations of the element
// by the content of a style attribute, such as "fill: red; opacity: 0.5".
func (e *Element) SetStyle(css string) error {
	// the parser drops the value of a last declaration without semicolon
	if trimmed := strings.TrimSpace(css); trimmed != "" && !strings.HasSuffix(trimmed, ";") {
		css = trimmed + ";"
	}
	decls, err := parser.ParseDeclarations(css)
	if err != nil {
		return e.handle(fmt.Errorf("invalid style %q: %w", css, err))
	}
	style := make(map[string]string, len(decls))
	for _, decl := range decls {
		name := strings.TrimSpace(decl.Property)
		if err := e.handle(validate("", name, decl.Value)); err != nil {
			return err
		}
		style[name] = strings.TrimSpace(decl.Value)
	}

	var changed []string
	for name, v := range style {
		if old, ok := e.style[name]; !ok || old != v {
			changed = append(changed, name)
		}
	}
	for name := range e.style {
		if _, ok := style[name]; !ok {
			changed = append(changed, name)
		}
	}
	e.style = style
	e.apply()
	for _, name := range changed {
		if slot := e.propSlots[name]; slot != nil {
			slot.NotifyListeners()
		}
	}
	e.scheduleRepaint()
	return nil
}

// SetUnits changes the unit context, for instance after a viewport resize.
func (e *Element) SetUnits(uc UnitContext) {
	e.Units = uc
	e.apply()
	e.scheduleRepaint()
}

func (e *Element) UpdateAttributeValue(ns, ln string, v Value) {
	k := attrKey{ns, ln}
	if v == nil {
		delete(e.attrValues, k)
	} else {
		e.attrValues[k] = v
	}
	e.AnimatedValue(ns, ln).SetAnimated(v != nil)
	e.attributeChanged(ns, ln)
}

func (e *Element) UpdatePropertyValue(name string, v Value) {
	if v == nil {
		delete(e.propValues, name)
	} else {
		e.propValues[name] = v
	}
	slot := e.AnimatedProperty(name)
	slot.SetAnimated(v != nil)
	e.apply()
	slot.NotifyListeners()
	e.scheduleRepaint()
}

// attributeChanged updates the node and notifies the listeners
// of the attribute, and of the matching property for presentation attributes.
func (e *Element) attributeChanged(ns, ln string) {
	e.apply()
	if slot := e.attrSlots[attrKey{ns, ln}]; slot != nil {
		slot.NotifyListeners()
	}
	if ns == "" && presentationAttributes[ln] {
		if slot := e.propSlots[ln]; slot != nil {
			slot.NotifyListeners()
		}
	}
	e.scheduleRepaint()
}

func (e *Element) scheduleRepaint() {
	if e.Scheduler != nil {
		e.Scheduler.ScheduleRepaint(e.Node)
	}
}

func (e *Element) PercentageInterpretation(ns, an string, isCSS bool) PercentageMode {
	return PercentageInterpretation(ns, an, isCSS)
}

// UseLinearRGBColorInterpolation returns true when the
// color-interpolation property is linearRGB.
func (e *Element) UseLinearRGBColorInterpolation() bool {
	v, _ := e.propertyValue("color-interpolation")
	return v == Keyword("linearRGB")
}

// SVGToUserSpace converts a length, using the computed font size of
// the element for font relative units.
func (e *Element) SVGToUserSpace(v float64, unit UnitType, mode PercentageMode) float64 {
	return e.unitContext().ToUserSpace(v, unit, mode)
}

func (e *Element) unitContext() UnitContext {
	uc := e.Units
	if e.fontSize > 0 {
		if uc.FontSize > 0 && uc.XHeight > 0 {
			uc.XHeight *= e.fontSize / uc.FontSize
		}
		uc.FontSize = e.fontSize
	}
	return uc
}

// FontSize returns the computed font size.
func (e *Element) FontSize() float64 { return e.fontSize }

func (e *Element) AddTargetListener(ns, an string, isCSS bool, l Listener) {
	if isCSS {
		e.AnimatedProperty(an).AddListener(l)
	} else {
		e.AnimatedValue(ns, an).AddListener(l)
	}
}

func (e *Element) RemoveTargetListener(ns, an string, isCSS bool, l Listener) {
	if isCSS {
		e.AnimatedProperty(an).RemoveListener(l)
	} else {
		e.AnimatedValue(ns, an).RemoveListener(l)
	}
}

// validate checks a declared value. Unknown attributes are accepted.
func validate(ns, ln, value string) error {
	if ns != "" {
		return nil
	}
	var err error
	switch {
	case lengthAttributes[ln]:
		_, err = ParseLength(value)
	case ln == "transform":
		_, err = ParseTransform(value)
	case ln == "d":
		_, err = svgpath.ParseData(value)
	case ln == "points":
		_, err = svgpath.ParsePoints(value, false)
	case presentationAttributes[ln]:
		_, err = parseProperty(ln, value)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", ln, err)
	}
	return nil
}

var errInvalidKeyword = errors.New("invalid keyword")

var propertyKeywords = map[string][]string{
	"stroke-linejoin":     {"miter", "miter-clip", "arc-clip", "round", "arc", "bevel"},
	"stroke-linecap":      {"butt", "round", "square", "cubic", "quadratic"},
	"stroke-leadlinecap":  {"butt", "round", "square", "cubic", "quadratic"},
	"stroke-linegap":      {"flat", "round", "cubic", "quadratic"},
	"fill-rule":           {"nonzero", "evenodd"},
	"visibility":          {"visible", "hidden", "collapse"},
	"color-interpolation": {"auto", "sRGB", "linearRGB"},
}

// parseProperty parses the declared value of a property.
func parseProperty(name, v string) (Value, error) {
	v = strings.TrimSpace(v)
	switch name {
	case "fill", "stroke":
		return ParsePaint(v)
	case "opacity", "fill-opacity", "stroke-opacity":
		f, err := readFraction(v)
		return Number(f), err
	case "stroke-miterlimit":
		f, err := strconv.ParseFloat(v, 64)
		return Number(f), err
	case "stroke-width", "stroke-dashoffset", "font-size", "baseline-shift":
		return ParseLength(v)
	case "stroke-dasharray":
		if v != "none" {
			for _, d := range splitOnCommaOrSpace(v) {
				if _, err := ParseLength(d); err != nil {
					return nil, err
				}
			}
		}
		return Keyword(v), nil
	default:
		if allowed, ok := propertyKeywords[name]; ok {
			for _, k := range allowed {
				if k == v {
					return Keyword(v), nil
				}
			}
			return nil, fmt.Errorf("%w: %q", errInvalidKeyword, v)
		}
		return Keyword(v), nil
	}
}

// propertyValue returns the effective value of a property,
// or nil if it is not specified (or invalid).
func (e *Element) propertyValue(name string) (Value, bool) {
	if v, ok := e.propValues[name]; ok {
		return v, true
	}
	if s, ok := e.style[name]; ok {
		if v, err := parseProperty(name, s); err == nil {
			return v, true
		}
	}
	if v, ok := e.attrValues[attrKey{"", name}]; ok {
		return v, true
	}
	if s, ok := e.attrs[attrKey{"", name}]; ok {
		if v, err := parseProperty(name, s); err == nil {
			return v, true
		}
	}
	return nil, false
}

// toUserSpace resolves a numeric value.
func toUserSpace(uc UnitContext, name string, isCSS bool, v Value) (float64, bool) {
	switch v := v.(type) {
	case Number:
		return float64(v), true
	case Length:
		return uc.ToUserSpace(v.Value, v.Unit, PercentageInterpretation("", name, isCSS)), true
	default:
		return 0, false
	}
}

// length returns the effective value of a geometry attribute.
func (e *Element) length(uc UnitContext, ln string) float64 {
	if v, ok := e.attrValues[attrKey{"", ln}]; ok {
		f, _ := toUserSpace(uc, ln, false, v)
		return f
	}
	if s, ok := e.attrs[attrKey{"", ln}]; ok {
		if l, err := ParseLength(s); err == nil {
			f, _ := toUserSpace(uc, ln, false, l)
			return f
		}
	}
	return 0
}

func (e *Element) number(uc UnitContext, name string, def float64) float64 {
	if v, ok := e.propertyValue(name); ok {
		if f, ok := toUserSpace(uc, name, true, v); ok {
			return f
		}
	}
	return def
}

func (e *Element) keyword(name, def string) string {
	if v, ok := e.propertyValue(name); ok {
		if k, ok := v.(Keyword); ok {
			return string(k)
		}
	}
	return def
}

func (e *Element) transform() rasterx.Matrix2D {
	if v, ok := e.attrValues[attrKey{"", "transform"}]; ok {
		if t, ok := v.(Transform); ok {
			return t.Matrix2D
		}
	}
	if s, ok := e.attrs[attrKey{"", "transform"}]; ok {
		if m, err := ParseTransform(s); err == nil {
			return m
		}
	}
	return e.baseTransform
}

// rawAttribute returns the animated value of ln as a string, or its
// declared value.
func (e *Element) rawAttribute(ln string) (string, bool) {
	if v, ok := e.attrValues[attrKey{"", ln}]; ok {
		return v.String(), true
	}
	s, ok := e.attrs[attrKey{"", ln}]
	return s, ok
}

// pathData compiles the d attribute. As for other renderers, an invalid
// path is drawn up to the first error.
func (e *Element) pathData() svgpath.Path {
	d, ok := e.rawAttribute("d")
	if !ok {
		return nil
	}
	data, _ := svgpath.ParseData(d)
	return data
}

func (e *Element) pointsData() svgpath.Path {
	points, _ := e.rawAttribute("points")
	data, _ := svgpath.ParsePoints(points, e.Tag == "polygon")
	return data
}

// apply writes the effective values onto the node.
// Invalid values are replaced by the initial ones.
func (e *Element) apply() {
	n := e.Node
	if n == nil {
		return
	}

	// the font size is resolved against the inherited one
	e.fontSize = e.number(e.Units, "font-size", e.Units.FontSize)
	uc := e.unitContext()

	st := n.Style
	st.Fill = svgnode.DefaultStyle.Fill
	if v, ok := e.propertyValue("fill"); ok {
		st.Fill = paintColor(v)
	}
	st.Stroke = nil
	if v, ok := e.propertyValue("stroke"); ok {
		st.Stroke = paintColor(v)
	}
	st.FillOpacity = clamp01(e.number(uc, "fill-opacity", 1))
	st.StrokeOpacity = clamp01(e.number(uc, "stroke-opacity", 1))
	st.StrokeWidth = e.number(uc, "stroke-width", 1)
	st.MiterLimit = e.number(uc, "stroke-miterlimit", 4)
	st.DashOffset = e.number(uc, "stroke-dashoffset", 0)
	st.Dash = e.dashes(uc)
	st.UseNonZeroWinding = e.keyword("fill-rule", "nonzero") != "evenodd"

	switch e.keyword("stroke-linejoin", "miter") {
	case "miter":
		st.LineJoin = svgnode.Miter
	case "miter-clip":
		st.LineJoin = svgnode.MiterClip
	case "arc-clip":
		st.LineJoin = svgnode.ArcClip
	case "round":
		st.LineJoin = svgnode.Round
	case "arc":
		st.LineJoin = svgnode.Arc
	case "bevel":
		st.LineJoin = svgnode.Bevel
	}
	st.LineCap = capMode(e.keyword("stroke-linecap", "butt"))
	st.LeadLineCap = capMode(e.keyword("stroke-leadlinecap", ""))
	switch e.keyword("stroke-linegap", "") {
	case "flat":
		st.LineGap = svgnode.FlatGap
	case "round":
		st.LineGap = svgnode.RoundGap
	case "cubic":
		st.LineGap = svgnode.CubicGap
	case "quadratic":
		st.LineGap = svgnode.QuadraticGap
	default:
		st.LineGap = svgnode.NilGap
	}

	n.Opacity = clamp01(e.number(uc, "opacity", 1))
	visibility := e.keyword("visibility", "visible")
	n.Visible = visibility == "visible" && e.keyword("display", "inline") != "none"
	n.Transform = e.transform()

	switch e.Tag {
	case "rect":
		n.Geometry = &svgnode.RectGeometry{
			X: e.length(uc, "x"), Y: e.length(uc, "y"),
			Width: e.length(uc, "width"), Height: e.length(uc, "height"),
			RX: e.length(uc, "rx"), RY: e.length(uc, "ry"),
		}
	case "circle":
		r := e.length(uc, "r")
		n.Geometry = &svgnode.EllipseGeometry{CX: e.length(uc, "cx"), CY: e.length(uc, "cy"), RX: r, RY: r}
	case "ellipse":
		n.Geometry = &svgnode.EllipseGeometry{
			CX: e.length(uc, "cx"), CY: e.length(uc, "cy"),
			RX: e.length(uc, "rx"), RY: e.length(uc, "ry"),
		}
	case "line":
		n.Geometry = &svgnode.LineGeometry{
			X1: e.length(uc, "x1"), Y1: e.length(uc, "y1"),
			X2: e.length(uc, "x2"), Y2: e.length(uc, "y2"),
		}
		st.Fill = nil
	case "path":
		n.Geometry = &svgnode.PathGeometry{Data: e.pathData()}
	case "polyline", "polygon":
		n.Geometry = &svgnode.PathGeometry{Data: e.pointsData()}
	case "text":
		n.TextX, n.TextY = e.length(uc, "x"), e.length(uc, "y")
	case "image":
		n.ImageRect = svgnode.Rect{
			X: e.length(uc, "x"), Y: e.length(uc, "y"),
			W: e.length(uc, "width"), H: e.length(uc, "height"),
		}
	}
	n.Style = st
}

func (e *Element) dashes(uc UnitContext) []float64 {
	v, ok := e.propertyValue("stroke-dasharray")
	if !ok {
		return nil
	}
	s := v.String()
	if s == "none" {
		return nil
	}
	mode := PercentageInterpretation("", "stroke-dasharray", true)
	var out []float64
	for _, d := range splitOnCommaOrSpace(s) {
		l, err := ParseLength(d)
		if err != nil {
			return nil
		}
		out = append(out, uc.ToUserSpace(l.Value, l.Unit, mode))
	}
	return out
}

func capMode(v string) svgnode.CapMode {
	switch v {
	case "butt":
		return svgnode.ButtCap
	case "round":
		return svgnode.RoundCap
	case "square":
		return svgnode.SquareCap
	case "cubic":
		return svgnode.CubicCap
	case "quadratic":
		return svgnode.QuadraticCap
	default:
		return svgnode.NilCap
	}
}

// paintColor returns nil for "none".
func paintColor(v Value) color.Color {
	if c, ok := v.(Color); ok {
		return c
	}
	return nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}
