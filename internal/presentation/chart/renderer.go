package chart

import (
	"fmt"
	"image/color"

	"tagvis/internal/core/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Renderer turns a finalized Result into a chart image. It only draws what
// the analyzer computed; no aggregation happens here.
type Renderer struct {
	cmap string
}

// NewRenderer creates a Renderer using the named brewer color map. The
// name is validated eagerly.
func NewRenderer(cmap string) (*Renderer, error) {
	if _, err := colors(cmap, 3); err != nil {
		return nil, err
	}
	return &Renderer{cmap: cmap}, nil
}

// Render writes the chart for res to path. The image format follows the
// file extension (.png, .svg, .pdf), except for subplot grids which are
// always PNG.
func (r *Renderer) Render(res *model.Result, path string) error {
	cols, err := colors(r.cmap, len(res.Tags))
	if err != nil {
		return err
	}

	switch res.Kind {
	case model.KindPie:
		return r.renderPie(res, cols, path)
	case model.KindStackedBar:
		return r.renderStackedBars(res, cols, path)
	case model.KindLine:
		return r.renderLines(res, cols, path)
	case model.KindSubplots:
		return r.renderSubplots(res, cols, path)
	default:
		return fmt.Errorf("unknown chart kind %q", res.Kind)
	}
}

func plotSize(buckets int) (vg.Length, vg.Length) {
	w := 10 * vg.Inch
	if buckets > 30 {
		w = 16 * vg.Inch
	}
	return w, 6 * vg.Inch
}

// swatch is a legend thumbnail drawing a filled color box.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, pts)
}

var _ plot.Thumbnailer = swatch{}
