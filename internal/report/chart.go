package report

import (
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
)

// ErrNotEnoughData is returned when fewer than two days carry a temperature range.
var ErrNotEnoughData = errors.New("not enough days with temperatures to chart")

// RenderDailyChart draws the daily maximum and minimum temperatures as a PNG.
// Days without temperatures are skipped.
func RenderDailyChart(w io.Writer, days []forecast.DailyDigestEntry) error {
	var (
		xs, highs, lows []float64
		ticks           []chart.Tick
	)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range days {
		if d.TempMin == nil || d.TempMax == nil {
			continue
		}
		x := float64(len(xs))
		xs = append(xs, x)
		highs = append(highs, *d.TempMax)
		lows = append(lows, *d.TempMin)
		ticks = append(ticks, chart.Tick{Value: x, Label: d.Date.Format("Mon 02")})
		lo = math.Min(lo, *d.TempMin)
		hi = math.Max(hi, *d.TempMax)
	}
	if len(xs) < 2 {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		Title: "Daily Temperature",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  700,
		Height: 350,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "°C",
			Range: &chart.ContinuousRange{
				Min: math.Floor(lo) - 1,
				Max: math.Ceil(hi) + 1,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Max",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 204, G: 51, B: 51, A: 255},
					StrokeWidth: 2,
					DotColor:    drawing.Color{R: 204, G: 51, B: 51, A: 255},
					DotWidth:    4,
				},
				XValues: xs,
				YValues: highs,
			},
			chart.ContinuousSeries{
				Name: "Min",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
					StrokeWidth: 2,
					DotColor:    drawing.Color{R: 51, G: 102, B: 204, A: 255},
					DotWidth:    4,
				},
				XValues: xs,
				YValues: lows,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
