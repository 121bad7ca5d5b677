package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette/brewer"
)

// colors resolves n colors from a brewer qualitative palette ("Paired" by
// default). Palettes carry between 3 and ~12 colors; smaller requests
// slice, larger ones cycle.
func colors(name string, n int) ([]color.Color, error) {
	if name == "" {
		name = "Paired"
	}

	want := n
	if want < 3 {
		want = 3
	}
	if want > 12 {
		want = 12
	}

	var pal []color.Color
	var lastErr error
	for k := want; k >= 3; k-- {
		p, err := brewer.GetPalette(brewer.TypeQualitative, name, k)
		if err != nil {
			lastErr = err
			continue
		}
		pal = p.Colors()
		break
	}
	if pal == nil {
		return nil, fmt.Errorf("unknown color map %q: %v", name, lastErr)
	}

	out := make([]color.Color, n)
	for i := 0; i < n; i++ {
		out[i] = pal[i%len(pal)]
	}
	return out, nil
}
