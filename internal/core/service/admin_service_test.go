package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

func newAdminService(repo *stubRepo) *AdminService {
	return NewAdminService(repo, stubStores{repo}, stubRatings{repo}, bcrypt.MinCost, zerolog.Nop())
}

func TestAdminService_CreateStore_OwnerValidation(t *testing.T) {
	repo := newStubRepo()
	svc := newAdminService(repo)
	owner := repo.seedUser("Store Owner Validation Check", "owner@example.com", domain.RoleOwner)
	user := repo.seedUser("Plain User Validation Check", "user@example.com", domain.RoleUser)

	// Non-existent owner reference.
	_, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{Name: "Shop", Address: "1 Main St", OwnerID: "ghost"})
	if !errors.Is(err, domain.ErrInvalidOwnerRef) {
		t.Fatalf("expected ErrInvalidOwnerRef for unknown owner, got %v", err)
	}

	// Existing user without the OWNER role.
	_, err = svc.CreateStore(context.Background(), ports.CreateStoreInput{Name: "Shop", Address: "1 Main St", OwnerID: user.ID})
	if !errors.Is(err, domain.ErrInvalidOwnerRef) {
		t.Fatalf("expected ErrInvalidOwnerRef for non-OWNER user, got %v", err)
	}

	// Valid OWNER: the reference round-trips.
	store, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{Name: "Shop", Address: "1 Main St", OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if store.OwnerID != owner.ID {
		t.Fatalf("ownerId did not round-trip: %q", store.OwnerID)
	}

	// No owner at all is fine.
	if _, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{Name: "Ownerless", Address: "2 Main St"}); err != nil {
		t.Fatalf("create ownerless store failed: %v", err)
	}
}

func TestAdminService_CreateUser(t *testing.T) {
	repo := newStubRepo()
	svc := newAdminService(repo)

	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:  "Created By Admin Test Account",
		Email: "new@example.com",
		Role:  "WIZARD",
	}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:  "Created By Admin Test Account",
		Email: "new@example.com",
		Role:  domain.RoleOwner,
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if created.TempPassword == "" {
		t.Fatalf("expected a temporary password")
	}
	if len(created.TempPassword) < 8 || len(created.TempPassword) > 16 {
		t.Fatalf("temp password %q violates the length policy", created.TempPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.User.PasswordHash), []byte(created.TempPassword)); err != nil {
		t.Fatalf("stored hash does not match the temp password: %v", err)
	}
	if created.User.Role != domain.RoleOwner {
		t.Fatalf("unexpected role: %s", created.User.Role)
	}
}

func TestAdminService_Metrics(t *testing.T) {
	repo := newStubRepo()
	svc := newAdminService(repo)
	u1 := repo.seedUser("Metrics First Seeded Account", "m1@example.com", domain.RoleUser)
	u2 := repo.seedUser("Metrics Second Seeded Account", "m2@example.com", domain.RoleUser)
	st := repo.seedStore("Shop", "1 Main St", "")
	_, _ = repo.Upsert(context.Background(), u1.ID, st.ID, 4)
	_, _ = repo.Upsert(context.Background(), u2.ID, st.ID, 5)

	m, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if m.TotalUsers != 2 || m.TotalStores != 1 || m.TotalRatings != 2 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestAdminService_GetUser_StoreRating(t *testing.T) {
	repo := newStubRepo()
	svc := newAdminService(repo)
	owner := repo.seedUser("Owner With A Store Account X", "owner@example.com", domain.RoleOwner)
	idle := repo.seedUser("Owner Without Store Account X", "idle@example.com", domain.RoleOwner)
	user := repo.seedUser("Regular User Detail Account X", "user@example.com", domain.RoleUser)
	st := repo.seedStore("Owned Shop", "1 Main St", owner.ID)
	_, _ = repo.Upsert(context.Background(), user.ID, st.ID, 5)
	_, _ = repo.Upsert(context.Background(), idle.ID, st.ID, 3)

	detail, err := svc.GetUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if detail.StoreRating == nil {
		t.Fatalf("expected a storeRating for an owner with a store")
	}
	if detail.StoreRating.Avg != 4.0 || detail.StoreRating.Count != 2 {
		t.Fatalf("unexpected storeRating: %+v", detail.StoreRating)
	}

	detail, err = svc.GetUser(context.Background(), idle.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if detail.StoreRating != nil {
		t.Fatalf("expected nil storeRating for an owner without a store")
	}

	detail, err = svc.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if detail.StoreRating != nil {
		t.Fatalf("expected nil storeRating for a USER")
	}

	if _, err := svc.GetUser(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_ListUsers_Filter(t *testing.T) {
	repo := newStubRepo()
	svc := newAdminService(repo)
	repo.seedUser("Searchable Name Owner Account", "o@example.com", domain.RoleOwner)
	repo.seedUser("Another Plain User Account AB", "searchme@example.com", domain.RoleUser)
	repo.seedUser("Third Plain User Account ABC", "t@example.com", domain.RoleUser)

	res, err := svc.ListUsers(context.Background(), ports.UserQuery{Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if res.Pagination.Total != 2 {
		t.Fatalf("expected 2 USER accounts, got %d", res.Pagination.Total)
	}

	res, err = svc.ListUsers(context.Background(), ports.UserQuery{Search: "searchme"})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if res.Pagination.Total != 1 {
		t.Fatalf("search over email failed, total=%d", res.Pagination.Total)
	}
}

func TestAdminService_GetStore_AuditTrail(t *testing.T) {
	repo := newStubRepo()
	svc := newAdminService(repo)
	owner := repo.seedUser("Audited Store Owner Account X", "owner@example.com", domain.RoleOwner)
	rater := repo.seedUser("Audited Store Rater Account X", "rater@example.com", domain.RoleUser)
	st := repo.seedStore("Audited Shop", "1 Main St", owner.ID)
	_, _ = repo.Upsert(context.Background(), rater.ID, st.ID, 5)

	detail, err := svc.GetStore(context.Background(), st.ID)
	if err != nil {
		t.Fatalf("get store failed: %v", err)
	}
	if detail.Owner == nil || detail.Owner.Email != "owner@example.com" {
		t.Fatalf("expected owner ref, got %+v", detail.Owner)
	}
	if detail.AvgRating != 5.0 || detail.RatingsCount != 1 {
		t.Fatalf("unexpected aggregates: avg=%v count=%d", detail.AvgRating, detail.RatingsCount)
	}
	if len(detail.Raters) != 1 || detail.Raters[0].Email != "rater@example.com" || detail.Raters[0].Value != 5 {
		t.Fatalf("unexpected audit trail: %+v", detail.Raters)
	}
}

func TestAdminService_UpdateAndDeleteStore(t *testing.T) {
	repo := newStubRepo()
	svc := newAdminService(repo)
	owner := repo.seedUser("Update Flow Store Owner Acct", "owner@example.com", domain.RoleOwner)
	st := repo.seedStore("Old Name", "1 Main St", "")

	name := "New Name"
	ownerID := owner.ID
	updated, err := svc.UpdateStore(context.Background(), st.ID, ports.UpdateStoreInput{Name: &name, OwnerID: &ownerID})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "New Name" || updated.OwnerID != owner.ID {
		t.Fatalf("update did not apply: %+v", updated)
	}

	bad := "ghost"
	if _, err := svc.UpdateStore(context.Background(), st.ID, ports.UpdateStoreInput{OwnerID: &bad}); !errors.Is(err, domain.ErrInvalidOwnerRef) {
		t.Fatalf("expected ErrInvalidOwnerRef, got %v", err)
	}

	if err := svc.DeleteStore(context.Background(), st.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteStore(context.Background(), st.ID); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound on second delete, got %v", err)
	}
}
