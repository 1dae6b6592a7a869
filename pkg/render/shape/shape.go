// Package shape turns one geometry and its resolved style into an SVG element.
//
// Every function takes the owning cell's world-space origin and translates
// the cell-local coordinates by it. The returned elements are detached
// (no parent) and ready to be added to a layer.
package shape

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/worldsvg/pkg/render/style"
	"github.com/matzehuels/worldsvg/pkg/world"
)

// Label text attributes.
const (
	FontFamily = "Verdana"
	FontSize   = 64
	LabelFill  = style.ColorBlue
)

// BackgroundFill is the color of the optional background rectangle.
const BackgroundFill = "white"

// Polygon renders a ring as a closed polygon. A single-point ring yields a
// zero-area polygon.
func Polygon(origin world.Point, ring world.Ring, s style.Style) *etree.Element {
	el := etree.NewElement("polygon")
	el.CreateAttr("fill", s.Fill)
	if s.HasStroke() {
		el.CreateAttr("stroke", s.Stroke)
		el.CreateAttr("stroke-width", strconv.Itoa(s.StrokeWidth))
	}
	el.CreateAttr("points", Points(origin, ring))
	return el
}

// Points serializes ring, translated by origin, as "x,y x,y ...".
func Points(origin world.Point, ring world.Ring) string {
	var b strings.Builder
	for i, p := range ring {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(origin.Add(p).String())
	}
	return b.String()
}

// Label renders text anchored at p translated by origin.
func Label(origin world.Point, p world.Point, text string) *etree.Element {
	at := origin.Add(p)
	el := etree.NewElement("text")
	el.CreateAttr("x", strconv.Itoa(at.X))
	el.CreateAttr("y", strconv.Itoa(at.Y))
	el.CreateAttr("font-family", FontFamily)
	el.CreateAttr("font-size", strconv.Itoa(FontSize))
	el.CreateAttr("fill", LabelFill)
	el.SetText(text)
	return el
}

// Background renders a white rectangle from the world origin to (w, h).
func Background(w, h int) *etree.Element {
	el := etree.NewElement("rect")
	el.CreateAttr("x", "0")
	el.CreateAttr("y", "0")
	el.CreateAttr("width", strconv.Itoa(w))
	el.CreateAttr("height", strconv.Itoa(h))
	el.CreateAttr("fill", BackgroundFill)
	return el
}
