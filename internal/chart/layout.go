// Package chart maps aggregated numeric series onto SVG primitives. The
// two layers are both pure: layout computes plain geometry structs from
// values and a surface size, and render serializes a layout as SVG bytes.
// The same input always produces the same output.
package chart

// Size is the drawing surface in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Margins around the plot area. The horizontal-bar layout replaces the
// left margin with a wider label gutter.
const (
	padTop    = 20
	padRight  = 20
	padBottom = 36
	padLeft   = 44

	hbarGutter = 120
)

// Series is a labeled sequence of values, one per x position.
type Series struct {
	Label  string
	Values []float64
}

// Value is one labeled magnitude for a bar chart.
type Value struct {
	Label string
	Value float64
}

// Point is one marker position on a line chart.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineSeries is the laid-out polyline for one labeled series.
type LineSeries struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// AxisLabel is one x-axis tick label and its horizontal anchor.
type AxisLabel struct {
	X    float64 `json:"x"`
	Text string  `json:"text"`
}

// LineLayout is the computed geometry of a time-series chart.
type LineLayout struct {
	Size    Size         `json:"size"`
	Max     float64      `json:"max"`
	Series  []LineSeries `json:"series"`
	XLabels []AxisLabel  `json:"x_labels"`
}

// Bar is one laid-out bar rectangle with its label and value.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// BarLayout is the computed geometry of a bar chart, vertical or
// horizontal.
type BarLayout struct {
	Size Size    `json:"size"`
	Max  float64 `json:"max"`
	Bars []Bar   `json:"bars"`
}

// maxTicks caps the number of x-axis labels on a line chart.
const maxTicks = 10

// maxOf returns the largest value seen across all series, clamped to at
// least 1 so an empty or all-zero input still maps onto a valid scale
// instead of dividing by zero.
func maxOf(values ...[]float64) float64 {
	max := 1.0
	for _, vs := range values {
		for _, v := range vs {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// LayoutLine places labeled series on the surface: values scale linearly
// from 0..max onto the plot height, points are spaced proportionally to
// their index across the plot width, and at most maxTicks x labels are
// kept.
func LayoutLine(series []Series, labels []string, size Size) LineLayout {
	n := len(labels)
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}

	plotW := float64(size.Width - padLeft - padRight)
	plotH := float64(size.Height - padTop - padBottom)

	valueSets := make([][]float64, len(series))
	for i, s := range series {
		valueSets[i] = s.Values
	}
	max := maxOf(valueSets...)

	xAt := func(i int) float64 {
		if n <= 1 {
			return padLeft + plotW/2
		}
		return float64(padLeft) + plotW*float64(i)/float64(n-1)
	}

	out := LineLayout{Size: size, Max: max, Series: make([]LineSeries, 0, len(series))}
	for _, s := range series {
		points := make([]Point, len(s.Values))
		for i, v := range s.Values {
			points[i] = Point{X: xAt(i), Y: float64(padTop) + plotH - plotH*v/max}
		}
		out.Series = append(out.Series, LineSeries{Label: s.Label, Points: points})
	}

	step := 1
	if n > maxTicks {
		step = (n + maxTicks - 1) / maxTicks
	}
	out.XLabels = make([]AxisLabel, 0, n)
	for i, text := range labels {
		if i%step != 0 {
			continue
		}
		out.XLabels = append(out.XLabels, AxisLabel{X: xAt(i), Text: text})
	}

	return out
}

// LayoutBars places one vertical bar per value: each bar gets an equal
// slot across the plot width and occupies 3/5 of it, centered, with its
// height scaled from 0..max onto the plot height.
func LayoutBars(values []Value, size Size) BarLayout {
	plotW := float64(size.Width - padLeft - padRight)
	plotH := float64(size.Height - padTop - padBottom)
	max := barMax(values)

	out := BarLayout{Size: size, Max: max, Bars: make([]Bar, 0, len(values))}
	if len(values) == 0 {
		return out
	}

	slot := plotW / float64(len(values))
	barW := slot * 3 / 5
	for i, v := range values {
		h := plotH * v.Value / max
		out.Bars = append(out.Bars, Bar{
			Label: v.Label,
			Value: v.Value,
			X:     float64(padLeft) + slot*float64(i) + (slot-barW)/2,
			Y:     float64(padTop) + plotH - h,
			W:     barW,
			H:     h,
		})
	}
	return out
}

// LayoutHBars places one horizontal bar per value, top to bottom, with a
// label gutter on the left. Bar lengths scale from 0..max onto the plot
// width.
func LayoutHBars(values []Value, size Size) BarLayout {
	plotW := float64(size.Width - hbarGutter - padRight)
	plotH := float64(size.Height - padTop - padBottom)
	max := barMax(values)

	out := BarLayout{Size: size, Max: max, Bars: make([]Bar, 0, len(values))}
	if len(values) == 0 {
		return out
	}

	slot := plotH / float64(len(values))
	barH := slot * 3 / 5
	for i, v := range values {
		out.Bars = append(out.Bars, Bar{
			Label: v.Label,
			Value: v.Value,
			X:     hbarGutter,
			Y:     float64(padTop) + slot*float64(i) + (slot-barH)/2,
			W:     plotW * v.Value / max,
			H:     barH,
		})
	}
	return out
}

func barMax(values []Value) float64 {
	max := 1.0
	for _, v := range values {
		if v.Value > max {
			max = v.Value
		}
	}
	return max
}
