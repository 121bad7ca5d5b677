package chart

import (
	"image/color"

	"tagvis/internal/core/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func (r *Renderer) renderLines(res *model.Result, cols []color.Color, path string) error {
	p := plot.New()
	p.Title.Text = res.Title
	p.X.Label.Text = res.XLabel
	p.Y.Label.Text = res.YLabel
	p.Y.Min = 0
	if res.YMax > 0 {
		p.Y.Max = res.YMax
	}
	p.Add(plotter.NewGrid())

	timeAxis := len(res.Times) == len(res.Buckets) && len(res.Times) > 0
	if timeAxis {
		p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	} else {
		p.NominalX(res.Buckets...)
	}

	for j, tag := range res.Tags {
		col := res.Column(j)
		xys := make(plotter.XYs, len(col))
		for i, v := range col {
			if timeAxis {
				xys[i].X = float64(res.Times[i])
			} else {
				xys[i].X = float64(i)
			}
			xys[i].Y = v
		}
		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.Color = cols[j]
		line.Width = vg.Points(2)
		scatter.Color = cols[j]
		p.Add(line, scatter)
		p.Legend.Add(tag, line)
	}
	p.Legend.Top = true

	if res.NowX >= 0 && !timeAxis {
		if err := addNowMarker(p, res.NowX, markerTop(res)); err != nil {
			return err
		}
	}

	w, h := plotSize(len(res.Buckets))
	return p.Save(w, h, path)
}
