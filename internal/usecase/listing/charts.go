package listing

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/dto"
)

type ChartData struct {
	repo domain.Repository
}

func NewChartData(repo domain.Repository) *ChartData {
	return &ChartData{repo: repo}
}

func (uc *ChartData) Execute(ctx context.Context) (*dto.ChartDataDTO, error) {

	statusCounts, err := uc.repo.StatusHistogram(ctx)
	if err != nil {
		return nil, err
	}

	ratingCounts, err := uc.repo.RatingHistogram(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ChartDataDTO{}

	for _, sc := range statusCounts {
		out.RequestsByStatus.Labels = append(
			out.RequestsByStatus.Labels,
			titleCase(sc.Status),
		)
		out.RequestsByStatus.Data = append(out.RequestsByStatus.Data, sc.Count)
	}

	for _, rc := range ratingCounts {
		out.RatingsDistribution.Labels = append(
			out.RatingsDistribution.Labels,
			fmt.Sprintf("%d-Star", rc.Rating),
		)
		out.RatingsDistribution.Data = append(out.RatingsDistribution.Data, rc.Count)
	}

	return out, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
