package main

import (
	"fmt"

	"github.com/benoitkugler/svgscene/svganim"
	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/tanema/gween/ease"
)

// demoScene is the animated tree rendered by the command.
type demoScene struct {
	root     *svgnode.Node
	elements []*svganim.Element
	timeline svganim.Timeline
}

type elementDecl struct {
	tag, name string
	attrs     [][2]string
	style     string
	parent    string
}

var demoElements = []elementDecl{
	{tag: "rect", name: "background", attrs: [][2]string{{"width", "100%"}, {"height", "100%"}}, style: "fill: #f4f1ea"},
	{tag: "g", name: "group", attrs: [][2]string{{"transform", "translate(10 10)"}, {"opacity", "0.8"}}},
	{
		tag: "circle", name: "ball", parent: "group",
		attrs: [][2]string{{"cx", "20%"}, {"cy", "25%"}, {"r", "10"}},
		style: "fill: red; stroke: black; stroke-width: 2; color-interpolation: linearRGB",
	},
	{
		tag: "rect", name: "square", parent: "group",
		attrs: [][2]string{{"x", "50%"}, {"y", "10%"}, {"width", "2.5em"}, {"height", "2.5em"}, {"rx", "4"}},
		style: "fill: #3080ff; stroke: #102040; stroke-dasharray: 6 3",
	},
	{
		tag: "line", name: "baseline",
		attrs: [][2]string{{"x1", "5%"}, {"y1", "70%"}, {"x2", "95%"}, {"y2", "70%"}},
		style: "stroke: gray; stroke-width: 3; stroke-linecap: round",
	},
	{
		tag: "path", name: "wave",
		attrs: [][2]string{{"d", "M10 80 q20 -20 40 0 t40 0 t40 0 a20 10 0 0 1 40 0"}},
		style: "fill: none; stroke: teal; stroke-width: 2; stroke-linejoin: round",
	},
	{tag: "polygon", name: "marker", attrs: [][2]string{{"points", "180,10 190,25 170,25"}}, style: "fill: orange"},
	{tag: "text", name: "caption", attrs: [][2]string{{"x", "5%"}, {"y", "90%"}}, style: "fill: black"},
}

func newNode(tag, name string) *svgnode.Node {
	switch tag {
	case "g":
		return svgnode.NewGroup(name)
	case "rect":
		return svgnode.NewRect(name, 0, 0, 0, 0)
	case "circle":
		return svgnode.NewEllipse(name, 0, 0, 0, 0)
	case "line":
		return svgnode.NewLine(name, 0, 0, 0, 0)
	case "path", "polygon":
		return svgnode.NewShape(name, nil)
	case "text":
		return svgnode.NewText(name, "svgscene", 0, 0)
	default:
		panic("unsupported tag " + tag)
	}
}

// buildScene creates the demo tree, binds its elements and schedules
// the animations, spanning duration seconds.
func buildScene(units svganim.UnitContext, scheduler svganim.RepaintScheduler, duration float32) (*demoScene, error) {
	sc := &demoScene{root: svgnode.NewGroup("root")}
	byName := map[string]*svganim.Element{}
	for _, decl := range demoElements {
		node := newNode(decl.tag, decl.name)
		parent := sc.root
		if decl.parent != "" {
			parent = byName[decl.parent].Node
		}
		parent.AddChild(node)

		e := svganim.NewElement(decl.tag, node, units)
		e.ErrorMode = svganim.StrictErrorMode
		for _, attr := range decl.attrs {
			if err := e.SetAttributeNS("", attr[0], attr[1]); err != nil {
				return nil, fmt.Errorf("element %s: %w", decl.name, err)
			}
		}
		if decl.style != "" {
			if err := e.SetStyle(decl.style); err != nil {
				return nil, fmt.Errorf("element %s: %w", decl.name, err)
			}
		}
		e.Scheduler = scheduler
		byName[decl.name] = e
		sc.elements = append(sc.elements, e)
	}

	blue, err := svganim.ParseColor("#2040c0")
	if err != nil {
		return nil, err
	}
	spin, err := svganim.ParseTransform("rotate(90 120 30)")
	if err != nil {
		return nil, err
	}
	red, err := svganim.ParseColor("red")
	if err != nil {
		return nil, err
	}
	ball, square, caption := byName["ball"], byName["square"], byName["caption"]

	for _, anim := range []struct {
		target   svganim.Target
		name     string
		isCSS    bool
		from, to svganim.Value
		fn       ease.TweenFunc
	}{
		{ball, "r", false, svganim.Length{Value: 10, Unit: svganim.UnitPx}, svganim.Length{Value: 15, Unit: svganim.UnitPercentage}, ease.OutBounce},
		{ball, "fill", true, red, blue, nil},
		{square, "transform", false, svganim.Transform{Matrix2D: square.Node.Transform}, svganim.Transform{Matrix2D: spin}, ease.InOutQuad},
		{caption, "visibility", true, svganim.Keyword("visible"), svganim.Keyword("hidden"), nil},
	} {
		a, err := svganim.NewAnimation(anim.target, "", anim.name, anim.isCSS, anim.from, anim.to, duration, anim.fn)
		if err != nil {
			return nil, err
		}
		a.Fill = svganim.FillFreeze
		sc.timeline.Add(a)
	}
	return sc, nil
}
