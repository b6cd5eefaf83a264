package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// palette is cycled per series or per bar.
var palette = []string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
}

const (
	axisStroke = `stroke="#333333" stroke-width="1"`
	labelStyle = `font-family="sans-serif" font-size="11px" fill="#333333"`
	background = `fill="#ffffff"`
)

// px snaps a layout coordinate to a whole pixel.
func px(v float64) int {
	return int(math.Round(v))
}

// formatValue prints a magnitude without a trailing fraction when it is
// whole: 9 not 9.0, but 2.5 stays 2.5.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fill(i int) string {
	return fmt.Sprintf(`fill="%s"`, palette[i%len(palette)])
}

func stroke(i int) string {
	return fmt.Sprintf(`fill="none" stroke="%s" stroke-width="2"`, palette[i%len(palette)])
}

// RenderLine serializes a line layout as an SVG document. Each series
// becomes a polyline with circular markers in its palette color, with a
// legend row across the top.
func RenderLine(w io.Writer, l LineLayout) {
	c := svg.New(w)
	c.Start(l.Size.Width, l.Size.Height)
	c.Rect(0, 0, l.Size.Width, l.Size.Height, background)

	drawFrame(c, l.Size, padLeft, l.Max)

	for i, s := range l.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]int, len(s.Points))
		ys := make([]int, len(s.Points))
		for j, p := range s.Points {
			xs[j] = px(p.X)
			ys[j] = px(p.Y)
		}
		c.Polyline(xs, ys, stroke(i))
		for j := range xs {
			c.Circle(xs[j], ys[j], 3, fill(i))
		}
	}

	for _, lab := range l.XLabels {
		c.Text(px(lab.X), l.Size.Height-padBottom+16, lab.Text, `text-anchor="middle"`, labelStyle)
	}

	lx := padLeft
	for i, s := range l.Series {
		c.Rect(lx, 4, 10, 10, fill(i))
		c.Text(lx+14, 13, s.Label, `text-anchor="start"`, labelStyle)
		lx += 14 + 8*len(s.Label) + 16
	}

	c.End()
}

// RenderBars serializes a vertical bar layout as an SVG document, with
// the value above each bar and its label below the axis.
func RenderBars(w io.Writer, l BarLayout) {
	c := svg.New(w)
	c.Start(l.Size.Width, l.Size.Height)
	c.Rect(0, 0, l.Size.Width, l.Size.Height, background)

	drawFrame(c, l.Size, padLeft, l.Max)

	for i, b := range l.Bars {
		c.Rect(px(b.X), px(b.Y), px(b.W), px(b.H), fill(i))
		cx := px(b.X + b.W/2)
		c.Text(cx, px(b.Y)-4, formatValue(b.Value), `text-anchor="middle"`, labelStyle)
		c.Text(cx, l.Size.Height-padBottom+16, b.Label, `text-anchor="middle"`, labelStyle)
	}

	c.End()
}

// RenderHBars serializes a horizontal bar layout as an SVG document, with
// each label in the left gutter and its value at the bar tip.
func RenderHBars(w io.Writer, l BarLayout) {
	c := svg.New(w)
	c.Start(l.Size.Width, l.Size.Height)
	c.Rect(0, 0, l.Size.Width, l.Size.Height, background)

	c.Line(hbarGutter, padTop, hbarGutter, l.Size.Height-padBottom, axisStroke)

	for i, b := range l.Bars {
		c.Rect(px(b.X), px(b.Y), px(b.W), px(b.H), fill(i))
		cy := px(b.Y+b.H/2) + 4
		c.Text(hbarGutter-8, cy, b.Label, `text-anchor="end"`, labelStyle)
		c.Text(px(b.X+b.W)+6, cy, formatValue(b.Value), `text-anchor="start"`, labelStyle)
	}

	c.End()
}

// drawFrame draws the y and x axis lines plus the 0 and max scale labels.
func drawFrame(c *svg.SVG, size Size, left int, max float64) {
	bottom := size.Height - padBottom
	c.Line(left, padTop, left, bottom, axisStroke)
	c.Line(left, bottom, size.Width-padRight, bottom, axisStroke)
	c.Text(left-6, padTop+4, formatValue(max), `text-anchor="end"`, labelStyle)
	c.Text(left-6, bottom+4, "0", `text-anchor="end"`, labelStyle)
}
