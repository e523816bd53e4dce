package health

// ChartStyle is the line styling of one metric dataset.
type ChartStyle struct {
	BorderColor     string
	BackgroundColor string
	Tension         float64
	Fill            bool
}

type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Tension         float64   `json:"tension"`
	Fill            bool      `json:"fill"`
}

// ChartData is the line chart input shape: one label per point and one dataset per metric.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

func DefaultChartStyles() map[Metric]ChartStyle {
	return map[Metric]ChartStyle{
		MetricSteps: {
			BorderColor:     "rgb(75, 192, 192)",
			BackgroundColor: "rgba(75, 192, 192, 0.2)",
			Tension:         0.1,
		},
		MetricWeight: {
			BorderColor:     "rgb(54, 162, 235)",
			BackgroundColor: "rgba(54, 162, 235, 0.2)",
			Tension:         0.1,
		},
		MetricHeartRate: {
			BorderColor:     "rgb(255, 99, 132)",
			BackgroundColor: "rgba(255, 99, 132, 0.2)",
			Tension:         0.1,
		},
	}
}

// ChartPresenter maps metric series into chart data.
// It is created once at startup, with the styles of all the charted metrics.
type ChartPresenter struct {
	styles map[Metric]ChartStyle
}

// NewChartPresenter registers the given styles on top of the default ones.
func NewChartPresenter(styles map[Metric]ChartStyle) *ChartPresenter {
	registered := DefaultChartStyles()
	for metric, style := range styles {
		registered[metric] = style
	}
	return &ChartPresenter{
		styles: registered,
	}
}

func (p *ChartPresenter) ChartData(series MetricSeries) ChartData {
	style := p.styles[series.Metric]
	return ChartData{
		Labels: series.Labels(),
		Datasets: []ChartDataset{
			{
				Label:           datasetLabel(series.Metric),
				Data:            series.Values(),
				BorderColor:     style.BorderColor,
				BackgroundColor: style.BackgroundColor,
				Tension:         style.Tension,
				Fill:            style.Fill,
			},
		},
	}
}

func datasetLabel(metric Metric) string {
	if metric == MetricSteps {
		return metric.Label()
	}
	return metric.Label() + " (" + metric.Unit() + ")"
}
