package services

import (
	"context"
	"testing"

	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOfferService(t *testing.T) (*OfferService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewOfferService(repositories.NewOfferRepository(db), setupTestUploads(t)), db
}

func TestOfferCreateAndGet(t *testing.T) {
	svc, db := newOfferService(t)
	ctx := context.Background()
	contractor := createTestUser(t, db, domain.RoleContractor)

	created, err := svc.Create(ctx, contractor.ID, &CreateOfferInput{
		Title:       "Plumbing repairs",
		Description: "Fast and tidy",
		Location:    "Valencia",
		Rate:        "35/hour",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusActive, created.Status)
	assert.Equal(t, contractor.ID, created.ContractorID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing repairs", got.Title)
}

func TestOfferGetNotFound(t *testing.T) {
	svc, _ := newOfferService(t)

	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOfferUpdateNonOwnerForbidden(t *testing.T) {
	svc, db := newOfferService(t)
	ctx := context.Background()
	owner := createTestUser(t, db, domain.RoleContractor)
	intruder := createTestUser(t, db, domain.RoleContractor)

	created, err := svc.Create(ctx, owner.ID, &CreateOfferInput{
		Title:       "Tiling",
		Description: "Floors and walls",
		Location:    "Sevilla",
		Rate:        "200/day",
	})
	require.NoError(t, err)

	newTitle := "Hijacked"
	_, err = svc.Update(ctx, created.ID, intruder.ID, domain.RoleContractor, &UpdateOfferInput{Title: &newTitle})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Offer must be untouched
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tiling", got.Title)
}

func TestOfferUpdateAdminBypassesOwnership(t *testing.T) {
	svc, db := newOfferService(t)
	ctx := context.Background()
	owner := createTestUser(t, db, domain.RoleContractor)
	admin := createTestUser(t, db, domain.RoleAdmin)

	created, err := svc.Create(ctx, owner.ID, &CreateOfferInput{
		Title:       "Painting",
		Description: "Interior and exterior",
		Location:    "Bilbao",
		Rate:        "180/day",
	})
	require.NoError(t, err)

	status := domain.OfferStatusCancelled
	updated, err := svc.Update(ctx, created.ID, admin.ID, domain.RoleAdmin, &UpdateOfferInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusCancelled, updated.Status)
}

func TestOfferUpdateInvalidStatus(t *testing.T) {
	svc, db := newOfferService(t)
	ctx := context.Background()
	owner := createTestUser(t, db, domain.RoleContractor)

	created, err := svc.Create(ctx, owner.ID, &CreateOfferInput{
		Title:       "Gardening",
		Description: "Weekly maintenance",
		Location:    "Granada",
		Rate:        "25/hour",
	})
	require.NoError(t, err)

	bogus := "archived"
	_, err = svc.Update(ctx, created.ID, owner.ID, domain.RoleContractor, &UpdateOfferInput{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOfferDeleteByOwner(t *testing.T) {
	svc, db := newOfferService(t)
	ctx := context.Background()
	owner := createTestUser(t, db, domain.RoleContractor)

	created, err := svc.Create(ctx, owner.ID, &CreateOfferInput{
		Title:       "Roofing",
		Description: "Leak fixes",
		Location:    "Oviedo",
		Rate:        "300/day",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, owner.ID, domain.RoleContractor))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
