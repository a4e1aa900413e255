package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	leaderboarddomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// ChartPalette is the color scheme for rendered charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette is a dark theme matching the app's UI.
var DefaultPalette = ChartPalette{
	Background:  drawing.Color{R: 24, G: 26, B: 27, A: 255},
	PrimaryLine: drawing.Color{R: 233, G: 69, B: 96, A: 255},
	AccentLine:  drawing.Color{R: 255, G: 195, B: 0, A: 255},
	TextColor:   drawing.Color{R: 220, G: 220, B: 220, A: 255},
}

// GeneratePointsChart renders a PNG line chart of the user's cumulative
// points across their scored races.
func (s *LeaderboardService) GeneratePointsChart(ctx context.Context, userID sharedtypes.UserID) ([]byte, error) {
	records, err := s.repo.GetScoreRecordsForUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch score records for chart: %w", err)
	}
	return generatePointsChart(records, DefaultPalette)
}

func generatePointsChart(records []leaderboarddomain.ScoreRecord, palette ChartPalette) ([]byte, error) {
	if len(records) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]time.Time, len(records))
	yValues := make([]float64, len(records))

	var cumulative sharedtypes.Points
	for i, r := range records {
		cumulative += r.Points
		xValues[i] = r.RaceDate
		yValues[i] = float64(cumulative)
	}

	mainSeries := chart.TimeSeries{
		Name:    "Points History",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Race Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "Total Points",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scored races yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
		},
		// Render refuses a chart without a visible series, so the
		// placeholder carries one drawn in the background color.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: palette.Background,
					StrokeWidth: 1,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
