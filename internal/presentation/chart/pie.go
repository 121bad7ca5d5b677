package chart

import (
	"fmt"
	"image/color"
	"math"

	"tagvis/internal/core/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// wedges draws one filled pie wedge per value, counterclockwise from the
// positive x axis, with white edges between wedges.
type wedges struct {
	values []float64
	colors []color.Color
}

func (w *wedges) Plot(c draw.Canvas, plt *plot.Plot) {
	var total float64
	for _, v := range w.values {
		total += v
	}
	if total <= 0 {
		return
	}

	center := vg.Point{
		X: (c.Min.X + c.Max.X) / 2,
		Y: (c.Min.Y + c.Max.Y) / 2,
	}
	radius := c.Max.X - c.Min.X
	if dy := c.Max.Y - c.Min.Y; dy < radius {
		radius = dy
	}
	radius = radius / 2 * 0.9

	start := 0.0
	for i, v := range w.values {
		angle := 2 * math.Pi * v / total

		var p vg.Path
		p.Move(center)
		p.Arc(center, radius, start, angle)
		p.Close()

		c.SetColor(w.colors[i])
		c.Fill(p)
		c.SetLineWidth(vg.Points(1.5))
		c.SetColor(color.White)
		c.Stroke(p)

		start += angle
	}
}

func (r *Renderer) renderPie(res *model.Result, cols []color.Color, path string) error {
	p := plot.New()
	p.Title.Text = res.Title
	p.HideAxes()

	if !res.Empty() {
		values := res.Values[0]
		p.Add(&wedges{values: values, colors: cols})

		var total float64
		for _, v := range values {
			total += v
		}
		for i, tag := range res.Tags {
			label := tag
			if total > 0 {
				label = fmt.Sprintf("%s  %1.1f%%", tag, 100*values[i]/total)
			}
			p.Legend.Add(label, swatch{color: cols[i]})
		}
		p.Legend.Top = true
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
