package chart

import (
	"image/color"
	"os"

	"tagvis/internal/core/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// renderSubplots draws one panel per tag, stacked vertically with a shared
// x axis and a shared y range, the small-multiples rendition used for
// double-counted charts.
func (r *Renderer) renderSubplots(res *model.Result, cols []color.Color, path string) error {
	if res.Empty() {
		// Degenerate but valid: fall back to an empty single plot.
		p := plot.New()
		p.Title.Text = res.Title
		return p.Save(8*vg.Inch, 4*vg.Inch, path)
	}

	ymax := res.YMax
	if ymax <= 0 {
		ymax = markerTop(res)
	}

	plots := make([][]*plot.Plot, len(res.Tags))
	for j, tag := range res.Tags {
		p := plot.New()
		if j == 0 {
			p.Title.Text = res.Title
		}
		if j == len(res.Tags)-1 {
			p.X.Label.Text = res.XLabel
		}
		p.Y.Min = 0
		p.Y.Max = ymax
		p.NominalX(res.Buckets...)
		p.Add(plotter.NewGrid())

		col := res.Column(j)
		xys := make(plotter.XYs, len(col))
		for i, v := range col {
			xys[i].X = float64(i)
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
		p.Legend.Top = true

		if res.NowX >= 0 {
			if err := addNowMarker(p, res.NowX, ymax); err != nil {
				return err
			}
		}

		plots[j] = []*plot.Plot{p}
	}

	img := vgimg.New(10*vg.Inch, vg.Length(len(res.Tags))*2*vg.Inch)
	dc := draw.New(img)
	canvases := plot.Align(plots, draw.Tiles{Rows: len(res.Tags), Cols: 1}, dc)
	for j := range plots {
		plots[j][0].Draw(canvases[j][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}
