package listing

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	infraRepo "github.com/UrbanAidServices/household-marketplace/internal/infra/repository"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ======================================================
// FIXTURES
// ======================================================

type listingEnv struct {
	db   *gorm.DB
	repo domain.Repository
}

func newListingEnv(t *testing.T) *listingEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Professional{},
		&models.ServiceRequest{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &listingEnv{db: db, repo: infraRepo.NewRequestGormRepository(db)}
}

type profSeed struct {
	username   string
	basePrice  float64
	experience int
	status     verification.State
	blocked    bool
}

func (e *listingEnv) seedProfessional(t *testing.T, s profSeed) *models.Professional {
	t.Helper()

	user := models.User{
		Username:     s.username,
		Email:        s.username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleProfessional,
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", s.username, err)
	}

	service := models.Service{ServiceType: s.username + "-svc", BasePrice: s.basePrice}
	if err := e.db.Create(&service).Error; err != nil {
		t.Fatalf("seed service for %s: %v", s.username, err)
	}

	prof := models.Professional{
		UserID:             user.ID,
		ServiceID:          service.ID,
		Experience:         s.experience,
		VerificationStatus: string(s.status),
		AdminBlocked:       s.blocked,
	}
	if err := e.db.Create(&prof).Error; err != nil {
		t.Fatalf("seed professional %s: %v", s.username, err)
	}
	return &prof
}

func (e *listingEnv) seedCustomer(t *testing.T, username string) *models.Customer {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	customer := models.Customer{UserID: user.ID}
	if err := e.db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer %s: %v", username, err)
	}
	return &customer
}

func (e *listingEnv) seedRequest(t *testing.T, customerID, profID uint, status domain.Status) *models.ServiceRequest {
	t.Helper()

	sr := models.ServiceRequest{
		CustomerID:     customerID,
		ProfessionalID: &profID,
		Status:         string(status),
	}
	if err := e.db.Create(&sr).Error; err != nil {
		t.Fatalf("seed request: %v", err)
	}
	return &sr
}

func (e *listingEnv) seedReview(t *testing.T, customerID, profID, requestID uint, rating int) {
	t.Helper()

	review := models.Review{
		CustomerID:       customerID,
		ProfessionalID:   profID,
		ServiceRequestID: requestID,
		Rating:           rating,
	}
	if err := e.db.Create(&review).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}
}

// ======================================================
// BROWSE
// ======================================================

func TestBrowse_OnlyEligibleProfessionals(t *testing.T) {
	env := newListingEnv(t)

	env.seedProfessional(t, profSeed{username: "ok", status: verification.StateVerified})
	env.seedProfessional(t, profSeed{username: "pending", status: verification.StateUnverified})
	env.seedProfessional(t, profSeed{username: "failed", status: verification.StateRejected})
	env.seedProfessional(t, profSeed{username: "banned", status: verification.StateVerified, blocked: true})

	uc := NewBrowseProfessionals(env.repo)
	cards, err := uc.Execute(context.Background(), nil, "", "")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}

	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Username != "ok" {
		t.Fatalf("listed %s, want ok", cards[0].Username)
	}
}

func TestBrowse_NoReviewsMeansZeroRating(t *testing.T) {
	env := newListingEnv(t)
	env.seedProfessional(t, profSeed{username: "fresh", status: verification.StateVerified})

	uc := NewBrowseProfessionals(env.repo)
	cards, err := uc.Execute(context.Background(), nil, "", "")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}

	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Rating != 0 {
		t.Fatalf("rating = %v, want 0", cards[0].Rating)
	}
	if cards[0].JobsCount != 0 {
		t.Fatalf("jobs count = %d, want 0", cards[0].JobsCount)
	}
}

func TestBrowse_DerivedStats(t *testing.T) {
	env := newListingEnv(t)

	prof := env.seedProfessional(t, profSeed{username: "vet", status: verification.StateVerified})
	customer := env.seedCustomer(t, "alice")

	// Two closed jobs with reviews, one paid, one still requested.
	r1 := env.seedRequest(t, customer.ID, prof.ID, domain.StatusClosed)
	r2 := env.seedRequest(t, customer.ID, prof.ID, domain.StatusClosed)
	env.seedRequest(t, customer.ID, prof.ID, domain.StatusPaid)
	env.seedRequest(t, customer.ID, prof.ID, domain.StatusRequested)

	env.seedReview(t, customer.ID, prof.ID, r1.ID, 5)
	env.seedReview(t, customer.ID, prof.ID, r2.ID, 4)

	uc := NewBrowseProfessionals(env.repo)
	cards, err := uc.Execute(context.Background(), nil, "", "")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}

	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Rating != 4.5 {
		t.Fatalf("rating = %v, want 4.5", cards[0].Rating)
	}
	// "Completed" counts CLOSED rows only; PAID ones already left the
	// working set.
	if cards[0].JobsCount != 2 {
		t.Fatalf("jobs count = %d, want 2", cards[0].JobsCount)
	}
}

func TestBrowse_SortOrders(t *testing.T) {
	env := newListingEnv(t)

	cheap := env.seedProfessional(t, profSeed{username: "cheap", basePrice: 50, experience: 2, status: verification.StateVerified})
	mid := env.seedProfessional(t, profSeed{username: "mid", basePrice: 100, experience: 8, status: verification.StateVerified})
	env.seedProfessional(t, profSeed{username: "dear", basePrice: 200, experience: 5, status: verification.StateVerified})

	customer := env.seedCustomer(t, "alice")

	// cheap: 3 stars, mid: 5 stars, dear: none.
	r1 := env.seedRequest(t, customer.ID, cheap.ID, domain.StatusClosed)
	env.seedReview(t, customer.ID, cheap.ID, r1.ID, 3)
	r2 := env.seedRequest(t, customer.ID, mid.ID, domain.StatusClosed)
	env.seedReview(t, customer.ID, mid.ID, r2.ID, 5)

	uc := NewBrowseProfessionals(env.repo)

	cases := []struct {
		sortBy string
		want   []string
	}{
		{SortByRating, []string{"mid", "cheap", "dear"}},
		{SortByPriceLow, []string{"cheap", "mid", "dear"}},
		{SortByPriceHigh, []string{"dear", "mid", "cheap"}},
		{SortByExperience, []string{"mid", "dear", "cheap"}},
	}

	for _, tc := range cases {
		cards, err := uc.Execute(context.Background(), nil, "", tc.sortBy)
		if err != nil {
			t.Fatalf("browse sort_by=%s: %v", tc.sortBy, err)
		}
		if len(cards) != len(tc.want) {
			t.Fatalf("sort_by=%s: got %d cards, want %d", tc.sortBy, len(cards), len(tc.want))
		}
		for i, username := range tc.want {
			if cards[i].Username != username {
				t.Fatalf("sort_by=%s: position %d = %s, want %s", tc.sortBy, i, cards[i].Username, username)
			}
		}
	}
}

func TestBrowse_ServiceFilter(t *testing.T) {
	env := newListingEnv(t)

	plumber := env.seedProfessional(t, profSeed{username: "plumber", status: verification.StateVerified})
	env.seedProfessional(t, profSeed{username: "cleaner", status: verification.StateVerified})

	uc := NewBrowseProfessionals(env.repo)
	cards, err := uc.Execute(context.Background(), &plumber.ServiceID, "", "")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}

	if len(cards) != 1 || cards[0].Username != "plumber" {
		t.Fatalf("service filter returned %v", cards)
	}
}

func TestBrowse_TextSearch(t *testing.T) {
	env := newListingEnv(t)

	env.seedProfessional(t, profSeed{username: "gardener", status: verification.StateVerified})
	env.seedProfessional(t, profSeed{username: "painter", status: verification.StateVerified})

	uc := NewBrowseProfessionals(env.repo)
	cards, err := uc.Execute(context.Background(), nil, "garden", "")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}

	if len(cards) != 1 || cards[0].Username != "gardener" {
		t.Fatalf("text search returned %v", cards)
	}
}

// ======================================================
// CHARTS
// ======================================================

func TestChartData(t *testing.T) {
	env := newListingEnv(t)

	prof := env.seedProfessional(t, profSeed{username: "vet", status: verification.StateVerified})
	customer := env.seedCustomer(t, "alice")

	r1 := env.seedRequest(t, customer.ID, prof.ID, domain.StatusClosed)
	env.seedRequest(t, customer.ID, prof.ID, domain.StatusClosed)
	env.seedRequest(t, customer.ID, prof.ID, domain.StatusRequested)

	env.seedReview(t, customer.ID, prof.ID, r1.ID, 5)

	uc := NewChartData(env.repo)
	data, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("chart data: %v", err)
	}

	// Grouped alphabetically by status: closed before requested.
	wantStatus := map[string]int64{"Closed": 2, "Requested": 1}
	if len(data.RequestsByStatus.Labels) != len(wantStatus) {
		t.Fatalf("status labels = %v", data.RequestsByStatus.Labels)
	}
	for i, label := range data.RequestsByStatus.Labels {
		if data.RequestsByStatus.Data[i] != wantStatus[label] {
			t.Fatalf("status %s = %d, want %d", label, data.RequestsByStatus.Data[i], wantStatus[label])
		}
	}

	if len(data.RatingsDistribution.Labels) != 1 || data.RatingsDistribution.Labels[0] != "5-Star" {
		t.Fatalf("rating labels = %v", data.RatingsDistribution.Labels)
	}
	if data.RatingsDistribution.Data[0] != 1 {
		t.Fatalf("rating count = %d, want 1", data.RatingsDistribution.Data[0])
	}
}
