package dto

// Label/value pairs shaped for the admin dashboard charts.
type ChartSeriesDTO struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

type ChartDataDTO struct {
	RequestsByStatus    ChartSeriesDTO `json:"requests_by_status"`
	RatingsDistribution ChartSeriesDTO `json:"ratings_distribution"`
}
