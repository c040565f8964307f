package listing

import (
	"context"
	"math"
	"sort"

	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/dto"
)

// ======================================================
// SORT KEYS
// ======================================================

const (
	SortByRating     = "rating" // default, descending
	SortByPriceLow   = "price_low"
	SortByPriceHigh  = "price_high"
	SortByExperience = "experience"
)

// ======================================================
// USE CASE
// ======================================================

type BrowseProfessionals struct {
	repo domain.Repository
}

func NewBrowseProfessionals(repo domain.Repository) *BrowseProfessionals {
	return &BrowseProfessionals{repo: repo}
}

// Execute lists verified, unblocked professionals with their derived
// stats, filtered and sorted for the customer dashboard. Ties keep
// input order.
func (uc *BrowseProfessionals) Execute(
	ctx context.Context,
	serviceID *uint,
	query string,
	sortBy string,
) ([]dto.ProfessionalCardDTO, error) {

	profs, err := uc.repo.ListEligibleProfessionals(ctx, serviceID, query)
	if err != nil {
		return nil, err
	}

	cards := make([]dto.ProfessionalCardDTO, 0, len(profs))
	for _, prof := range profs {

		avg, err := uc.repo.AverageRating(ctx, prof.ID)
		if err != nil {
			return nil, err
		}

		jobs, err := uc.repo.CompletedJobsCount(ctx, prof.ID)
		if err != nil {
			return nil, err
		}

		card := dto.ProfessionalCardDTO{
			ID:          prof.ID,
			Description: prof.Description,
			Experience:  prof.Experience,
			ServiceID:   prof.ServiceID,
			Rating:      math.Round(avg*10) / 10,
			JobsCount:   jobs,
		}
		if prof.User != nil {
			card.Username = prof.User.Username
			card.Address = prof.User.Address
			card.Pin = prof.User.Pin
		}
		if prof.Service != nil {
			card.ServiceType = prof.Service.ServiceType
			card.BasePrice = prof.Service.BasePrice
		}

		cards = append(cards, card)
	}

	switch sortBy {
	case SortByPriceLow:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].BasePrice < cards[j].BasePrice
		})
	case SortByPriceHigh:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].BasePrice > cards[j].BasePrice
		})
	case SortByExperience:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Experience > cards[j].Experience
		})
	default:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Rating > cards[j].Rating
		})
	}

	return cards, nil
}
