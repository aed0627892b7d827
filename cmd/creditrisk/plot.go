package main

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/model"
)

// plotLossCurve draws the mean training loss of every epoch.
func plotLossCurve(history []float64, filename string) error {
	p := plot.New()
	p.Title.Text = "Training Loss"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Binary cross-entropy"

	pts := make(plotter.XYs, len(history))
	for i, v := range history {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// plotScores draws p(good) of each held-out applicant against its row
// index, good applicants as dots and bad ones as crosses, with the decision
// threshold as a horizontal line.
func plotScores(proba [][2]float64, truth []int, threshold float64, filename string) error {
	p := plot.New()
	p.Title.Text = "Held-out Scores"
	p.X.Label.Text = "Applicant"
	p.Y.Label.Text = "p(good)"
	p.Y.Min, p.Y.Max = 0, 1

	var good, bad plotter.XYs
	for i, pr := range proba {
		pt := plotter.XY{X: float64(i), Y: pr[model.Good]}
		if truth[i] == model.Good {
			good = append(good, pt)
		} else {
			bad = append(bad, pt)
		}
	}
	for _, group := range []struct {
		pts   plotter.XYs
		color color.RGBA
		shape draw.GlyphDrawer
		name  string
	}{
		{good, color.RGBA{G: 160, A: 255}, draw.CircleGlyph{}, "good"},
		{bad, color.RGBA{R: 220, A: 255}, draw.CrossGlyph{}, "bad"},
	} {
		if len(group.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(group.pts)
		if err != nil {
			return err
		}
		s.Color = group.color
		s.Shape = group.shape
		s.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(group.name, s)
	}

	cut, err := plotter.NewLine(plotter.XYs{{X: 0, Y: threshold}, {X: float64(max(len(proba)-1, 1)), Y: threshold}})
	if err != nil {
		return err
	}
	cut.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(cut)

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
