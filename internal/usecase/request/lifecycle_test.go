package request

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	infraRepo "github.com/UrbanAidServices/household-marketplace/internal/infra/repository"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ======================================================
// FIXTURES
// ======================================================

type lifecycleEnv struct {
	db   *gorm.DB
	repo domain.Repository

	customerID     uint
	professionalID uint
	serviceID      uint
}

func newLifecycleEnv(t *testing.T) *lifecycleEnv {
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
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	custUser := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	profUser := models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleProfessional}
	if err := db.Create(&custUser).Error; err != nil {
		t.Fatalf("seed customer user: %v", err)
	}
	if err := db.Create(&profUser).Error; err != nil {
		t.Fatalf("seed professional user: %v", err)
	}

	customer := models.Customer{UserID: custUser.ID}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	service := models.Service{ServiceType: "plumbing", BasePrice: 100}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	professional := models.Professional{
		UserID:             profUser.ID,
		ServiceID:          service.ID,
		Experience:         5,
		VerificationStatus: string(verification.StateVerified),
	}
	if err := db.Create(&professional).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}

	return &lifecycleEnv{
		db:             db,
		repo:           infraRepo.NewRequestGormRepository(db),
		customerID:     customer.ID,
		professionalID: professional.ID,
		serviceID:      service.ID,
	}
}

func newTestDispatcher(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db))
}

func mustCreateRequest(t *testing.T, env *lifecycleEnv) *models.ServiceRequest {
	t.Helper()

	uc := NewCreateRequest(env.repo, newTestDispatcher(env.db))
	sr, err := uc.Execute(context.Background(), CreateRequestInput{
		CustomerID:     env.customerID,
		ProfessionalID: env.professionalID,
		ServiceID:      env.serviceID,
		Date:           "2025-06-01",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return sr
}

// ======================================================
// CREATE
// ======================================================

func TestCreateRequest_StartsRequestedWithoutCompletion(t *testing.T) {
	env := newLifecycleEnv(t)

	sr := mustCreateRequest(t, env)

	if sr.Status != string(domain.StatusRequested) {
		t.Fatalf("status = %s, want requested", sr.Status)
	}
	if sr.DateOfCompletion != nil {
		t.Fatalf("new request must not carry a completion date: %v", sr.DateOfCompletion)
	}
}

func TestCreateRequest_RejectsDuplicateActive(t *testing.T) {
	env := newLifecycleEnv(t)

	mustCreateRequest(t, env)

	uc := NewCreateRequest(env.repo, newTestDispatcher(env.db))
	_, err := uc.Execute(context.Background(), CreateRequestInput{
		CustomerID:     env.customerID,
		ProfessionalID: env.professionalID,
		ServiceID:      env.serviceID,
		Date:           "2025-06-02",
	})
	if httperr.BusinessCode(err) != httperr.CodeDuplicateActiveRequest {
		t.Fatalf("duplicate active request: got %v, want %s", err, httperr.CodeDuplicateActiveRequest)
	}
}

func TestCreateRequest_AllowsNewAfterRejection(t *testing.T) {
	env := newLifecycleEnv(t)

	first := mustCreateRequest(t, env)

	rejectUC := NewRejectRequest(env.repo, newTestDispatcher(env.db))
	if _, err := rejectUC.Execute(context.Background(), env.professionalID, first.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// Rejected is not active, so the pair may book again.
	uc := NewCreateRequest(env.repo, newTestDispatcher(env.db))
	if _, err := uc.Execute(context.Background(), CreateRequestInput{
		CustomerID:     env.customerID,
		ProfessionalID: env.professionalID,
		ServiceID:      env.serviceID,
		Date:           "2025-06-03",
	}); err != nil {
		t.Fatalf("second booking after rejection: %v", err)
	}
}

func TestCreateRequest_InvalidInput(t *testing.T) {
	env := newLifecycleEnv(t)
	uc := NewCreateRequest(env.repo, newTestDispatcher(env.db))

	_, err := uc.Execute(context.Background(), CreateRequestInput{
		CustomerID:     env.customerID,
		ProfessionalID: env.professionalID,
		ServiceID:      env.serviceID,
		Date:           "01/06/2025",
	})
	if httperr.BusinessCode(err) != httperr.CodeInvalidInput {
		t.Fatalf("bad date: got %v, want %s", err, httperr.CodeInvalidInput)
	}

	bad := -10.0
	_, err = uc.Execute(context.Background(), CreateRequestInput{
		CustomerID:     env.customerID,
		ProfessionalID: env.professionalID,
		ServiceID:      env.serviceID,
		ProposedPrice:  &bad,
		Date:           "2025-06-01",
	})
	if httperr.BusinessCode(err) != httperr.CodeInvalidInput {
		t.Fatalf("negative price: got %v, want %s", err, httperr.CodeInvalidInput)
	}

	_, err = uc.Execute(context.Background(), CreateRequestInput{
		CustomerID:     env.customerID,
		ProfessionalID: 9999,
		ServiceID:      env.serviceID,
		Date:           "2025-06-01",
	})
	if httperr.BusinessCode(err) != httperr.CodeNotFound {
		t.Fatalf("unknown professional: got %v, want %s", err, httperr.CodeNotFound)
	}
}

// ======================================================
// ACCEPT / REJECT
// ======================================================

func TestAcceptRequest_OwnershipGuard(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	otherUser := models.User{Username: "carol", Email: "carol@example.com", PasswordHash: "x", Role: models.RoleProfessional}
	if err := env.db.Create(&otherUser).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	other := models.Professional{
		UserID:             otherUser.ID,
		ServiceID:          env.serviceID,
		VerificationStatus: string(verification.StateVerified),
	}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}

	uc := NewAcceptRequest(env.repo, newTestDispatcher(env.db))
	_, err := uc.Execute(context.Background(), other.ID, sr.ID)
	if httperr.BusinessCode(err) != httperr.CodeForbidden {
		t.Fatalf("foreign professional accepting: got %v, want %s", err, httperr.CodeForbidden)
	}
}

func TestAcceptRequest_BlockedProfessionalRefused(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	if err := env.db.Model(&models.Professional{}).
		Where("id = ?", env.professionalID).
		Update("admin_blocked", true).Error; err != nil {
		t.Fatalf("block professional: %v", err)
	}

	uc := NewAcceptRequest(env.repo, newTestDispatcher(env.db))
	_, err := uc.Execute(context.Background(), env.professionalID, sr.ID)
	if httperr.BusinessCode(err) != httperr.CodeForbidden {
		t.Fatalf("blocked professional accepting: got %v, want %s", err, httperr.CodeForbidden)
	}
}

// ======================================================
// PRICE NEGOTIATION
// ======================================================

func TestUpdateProposedPrice_OnlyWhileRequested(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	uc := NewUpdateProposedPrice(env.repo, newTestDispatcher(env.db))

	updated, err := uc.Execute(context.Background(), env.customerID, sr.ID, 150)
	if err != nil {
		t.Fatalf("update price while requested: %v", err)
	}
	if updated.ProposedPrice == nil || *updated.ProposedPrice != 150 {
		t.Fatalf("price = %v, want 150", updated.ProposedPrice)
	}

	acceptUC := NewAcceptRequest(env.repo, newTestDispatcher(env.db))
	if _, err := acceptUC.Execute(context.Background(), env.professionalID, sr.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	_, err = uc.Execute(context.Background(), env.customerID, sr.ID, 200)
	if httperr.BusinessCode(err) != httperr.CodeInvalidTransition {
		t.Fatalf("price edit after accept: got %v, want %s", err, httperr.CodeInvalidTransition)
	}
}

func TestUpdateProposedPrice_ForbiddenForOtherCustomer(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	otherUser := models.User{Username: "dave", Email: "dave@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	if err := env.db.Create(&otherUser).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	other := models.Customer{UserID: otherUser.ID}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	uc := NewUpdateProposedPrice(env.repo, newTestDispatcher(env.db))
	_, err := uc.Execute(context.Background(), other.ID, sr.ID, 150)
	if httperr.BusinessCode(err) != httperr.CodeForbidden {
		t.Fatalf("foreign customer editing price: got %v, want %s", err, httperr.CodeForbidden)
	}
}

// ======================================================
// REVIEW / PAYMENT
// ======================================================

func TestFileReview_ClosesRequestAndRefusesSecondReview(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	uc := NewFileReview(env.repo, newTestDispatcher(env.db))

	review, err := uc.Execute(context.Background(), FileReviewInput{
		CustomerID: env.customerID,
		RequestID:  sr.ID,
		Rating:     4,
		Remarks:    "solid work",
	})
	if err != nil {
		t.Fatalf("file review: %v", err)
	}
	if review.Rating != 4 {
		t.Fatalf("rating = %d, want 4", review.Rating)
	}

	var reloaded models.ServiceRequest
	if err := env.db.First(&reloaded, sr.ID).Error; err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if reloaded.Status != string(domain.StatusClosed) {
		t.Fatalf("status after review = %s, want closed", reloaded.Status)
	}
	if reloaded.DateOfCompletion == nil {
		t.Fatal("review must stamp the completion date")
	}

	_, err = uc.Execute(context.Background(), FileReviewInput{
		CustomerID: env.customerID,
		RequestID:  sr.ID,
		Rating:     5,
	})
	if httperr.BusinessCode(err) != httperr.CodeAlreadyReviewed {
		t.Fatalf("second review: got %v, want %s", err, httperr.CodeAlreadyReviewed)
	}
}

func TestCreateReview_StoreRejectsSecondRowPerRequest(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	first := &models.Review{
		CustomerID:       env.customerID,
		ProfessionalID:   env.professionalID,
		ServiceID:        env.serviceID,
		ServiceRequestID: sr.ID,
		Rating:           4,
	}
	if err := env.repo.CreateReview(context.Background(), first); err != nil {
		t.Fatalf("first review row: %v", err)
	}

	// The unique index on service_request_id holds even when the
	// app-level pre-check is bypassed.
	second := &models.Review{
		CustomerID:       env.customerID,
		ProfessionalID:   env.professionalID,
		ServiceID:        env.serviceID,
		ServiceRequestID: sr.ID,
		Rating:           5,
	}
	if err := env.repo.CreateReview(context.Background(), second); err == nil {
		t.Fatal("store accepted a second review row for the same request")
	}
}

// reviewConflictRepo simulates losing a review race: the pre-check sees
// no review, then the insert comes back with a Postgres unique
// violation.
type reviewConflictRepo struct {
	domain.Repository
}

func (r *reviewConflictRepo) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return fn(r)
}

func (r *reviewConflictRepo) CreateReview(
	_ context.Context,
	_ *models.Review,
) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_service_request_id"}
}

func TestFileReview_UniqueViolationMapsToAlreadyReviewed(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	uc := NewFileReview(&reviewConflictRepo{Repository: env.repo}, newTestDispatcher(env.db))

	_, err := uc.Execute(context.Background(), FileReviewInput{
		CustomerID: env.customerID,
		RequestID:  sr.ID,
		Rating:     5,
	})
	if httperr.BusinessCode(err) != httperr.CodeAlreadyReviewed {
		t.Fatalf("racing review: got %v, want %s", err, httperr.CodeAlreadyReviewed)
	}
}

func TestFileReview_RatingBounds(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	uc := NewFileReview(env.repo, newTestDispatcher(env.db))

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Execute(context.Background(), FileReviewInput{
			CustomerID: env.customerID,
			RequestID:  sr.ID,
			Rating:     rating,
		})
		if httperr.BusinessCode(err) != httperr.CodeInvalidInput {
			t.Fatalf("rating %d: got %v, want %s", rating, err, httperr.CodeInvalidInput)
		}
	}
}

func TestFullLifecycle_RequestedToPaid(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	acceptUC := NewAcceptRequest(env.repo, newTestDispatcher(env.db))
	if _, err := acceptUC.Execute(context.Background(), env.professionalID, sr.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	reviewUC := NewFileReview(env.repo, newTestDispatcher(env.db))
	if _, err := reviewUC.Execute(context.Background(), FileReviewInput{
		CustomerID: env.customerID,
		RequestID:  sr.ID,
		Rating:     5,
	}); err != nil {
		t.Fatalf("review: %v", err)
	}

	payUC := NewProcessPayment(env.repo, newTestDispatcher(env.db))
	paid, err := payUC.Execute(context.Background(), env.customerID, sr.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.Status != string(domain.StatusPaid) {
		t.Fatalf("status = %s, want paid", paid.Status)
	}
	if paid.DateOfCompletion == nil {
		t.Fatal("payment must keep a completion date")
	}

	// Paid is terminal.
	_, err = payUC.Execute(context.Background(), env.customerID, sr.ID)
	if httperr.BusinessCode(err) != httperr.CodeInvalidTransition {
		t.Fatalf("second payment: got %v, want %s", err, httperr.CodeInvalidTransition)
	}
}

func TestProcessPayment_RequiresClosed(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	payUC := NewProcessPayment(env.repo, newTestDispatcher(env.db))
	_, err := payUC.Execute(context.Background(), env.customerID, sr.ID)
	if httperr.BusinessCode(err) != httperr.CodeInvalidTransition {
		t.Fatalf("payment before close: got %v, want %s", err, httperr.CodeInvalidTransition)
	}
}

// ======================================================
// REASSIGNMENT
// ======================================================

func TestReassign_OnlyFromRejected(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	newProfUser := models.User{Username: "erin", Email: "erin@example.com", PasswordHash: "x", Role: models.RoleProfessional}
	if err := env.db.Create(&newProfUser).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	newProf := models.Professional{
		UserID:             newProfUser.ID,
		ServiceID:          env.serviceID,
		VerificationStatus: string(verification.StateVerified),
	}
	if err := env.db.Create(&newProf).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}

	uc := NewReassignProfessional(env.repo, newTestDispatcher(env.db))

	_, err := uc.Execute(context.Background(), 1, sr.ID, newProf.ID)
	if httperr.BusinessCode(err) != httperr.CodeInvalidTransition {
		t.Fatalf("reassign while requested: got %v, want %s", err, httperr.CodeInvalidTransition)
	}

	rejectUC := NewRejectRequest(env.repo, newTestDispatcher(env.db))
	if _, err := rejectUC.Execute(context.Background(), env.professionalID, sr.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	updated, err := uc.Execute(context.Background(), 1, sr.ID, newProf.ID)
	if err != nil {
		t.Fatalf("reassign after rejection: %v", err)
	}
	if updated.Status != string(domain.StatusRequested) {
		t.Fatalf("status = %s, want requested", updated.Status)
	}
	if updated.ProfessionalID == nil || *updated.ProfessionalID != newProf.ID {
		t.Fatalf("professional = %v, want %d", updated.ProfessionalID, newProf.ID)
	}
}

func TestReassign_UnknownProfessional(t *testing.T) {
	env := newLifecycleEnv(t)
	sr := mustCreateRequest(t, env)

	rejectUC := NewRejectRequest(env.repo, newTestDispatcher(env.db))
	if _, err := rejectUC.Execute(context.Background(), env.professionalID, sr.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	uc := NewReassignProfessional(env.repo, newTestDispatcher(env.db))
	_, err := uc.Execute(context.Background(), 1, sr.ID, 9999)
	if httperr.BusinessCode(err) != httperr.CodeNotFound {
		t.Fatalf("reassign to unknown professional: got %v, want %s", err, httperr.CodeNotFound)
	}
}

// ======================================================
// HISTORY
// ======================================================

func TestListHistory(t *testing.T) {
	env := newLifecycleEnv(t)
	mustCreateRequest(t, env)

	uc := NewListHistory(env.repo)

	byCustomer, err := uc.ForCustomer(context.Background(), env.customerID)
	if err != nil {
		t.Fatalf("history by customer: %v", err)
	}
	if len(byCustomer) != 1 {
		t.Fatalf("customer history length = %d, want 1", len(byCustomer))
	}

	byProfessional, err := uc.ForProfessional(context.Background(), env.professionalID)
	if err != nil {
		t.Fatalf("history by professional: %v", err)
	}
	if len(byProfessional) != 1 {
		t.Fatalf("professional history length = %d, want 1", len(byProfessional))
	}
}
