package svganim

// attributes resolving percentages against the viewport width
var widthAttributes = map[string]bool{
	"x": true, "x1": true, "x2": true, "cx": true, "rx": true,
	"dx": true, "fx": true, "width": true, "refX": true, "markerWidth": true,
}

// attributes resolving percentages against the viewport height
var heightAttributes = map[string]bool{
	"y": true, "y1": true, "y2": true, "cy": true, "ry": true,
	"dy": true, "fy": true, "height": true, "refY": true, "markerHeight": true,
}

// properties resolving percentages against the font size
var fontSizeProperties = map[string]bool{
	"font-size":      true,
	"baseline-shift": true,
}

// PercentageInterpretation returns how percentages are resolved for the
// attribute (ns, an). isCSS is true for properties, which only depend
// on their name; presentation attributes share the property rules.
// Attributes in a non null namespace resolve against the viewport size.
func PercentageInterpretation(ns, an string, isCSS bool) PercentageMode {
	if isCSS || fontSizeProperties[an] {
		if fontSizeProperties[an] && ns == "" {
			return PercentageFontSize
		}
		return PercentageViewportSize
	}
	if ns != "" {
		return PercentageViewportSize
	}
	if widthAttributes[an] {
		return PercentageViewportWidth
	}
	if heightAttributes[an] {
		return PercentageViewportHeight
	}
	return PercentageViewportSize
}
