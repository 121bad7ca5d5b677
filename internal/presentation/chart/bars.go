package chart

import (
	"image/color"

	"tagvis/internal/core/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func (r *Renderer) renderStackedBars(res *model.Result, cols []color.Color, path string) error {
	p := plot.New()
	p.Title.Text = res.Title
	p.X.Label.Text = res.XLabel
	p.Y.Label.Text = res.YLabel
	p.Y.Min = 0
	if res.YMax > 0 {
		p.Y.Max = res.YMax
	}

	width := vg.Points(18)
	if len(res.Buckets) > 30 {
		width = vg.Points(8)
	}

	var prev *plotter.BarChart
	for j, tag := range res.Tags {
		b, err := plotter.NewBarChart(plotter.Values(res.Column(j)), width)
		if err != nil {
			return err
		}
		b.Color = cols[j]
		b.LineStyle.Width = 0
		if prev != nil {
			b.StackOn(prev)
		}
		p.Add(b)
		p.Legend.Add(tag, b)
		prev = b
	}
	p.NominalX(res.Buckets...)
	p.Legend.Top = true

	if res.NowX >= 0 {
		if err := addNowMarker(p, res.NowX, markerTop(res)); err != nil {
			return err
		}
	}

	w, h := plotSize(len(res.Buckets))
	return p.Save(w, h, path)
}

// markerTop picks the vertical extent of the now-marker line.
func markerTop(res *model.Result) float64 {
	if res.YMax > 0 {
		return res.YMax
	}
	if m := res.ColumnMax(); m > 0 {
		return m
	}
	return 1
}

// addNowMarker draws a vertical line at the current time's position.
func addNowMarker(p *plot.Plot, x, top float64) error {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 200, A: 255}
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("now", line)
	return nil
}
