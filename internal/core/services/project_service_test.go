package services

import (
	"context"
	"testing"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProjectService(t *testing.T) (*ProjectService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewProjectService(
		repositories.NewProjectRepository(db),
		repositories.NewApplicationRepository(db),
	)
	return svc, db
}

func TestProjectCreateDefaultsToOpen(t *testing.T) {
	svc, db := newProjectService(t)
	client := createTestUser(t, db, domain.RoleClient)

	created, err := svc.Create(context.Background(), client.ID, &CreateProjectInput{
		Title:  "Kitchen remodel",
		Budget: 8000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusOpen, created.Status)
	assert.Equal(t, client.ID, created.ClientID)
}

func TestApplyDuplicateRejected(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	client := createTestUser(t, db, domain.RoleClient)
	contractor := createTestUser(t, db, domain.RoleContractor)
	project := createTestProject(t, db, client.ID, domain.ProjectStatusOpen)

	_, err := svc.Apply(ctx, project.ID, contractor.ID, &ApplyInput{Message: "I can start Monday"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, project.ID, contractor.ID, &ApplyInput{Message: "Second try"})
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)

	// Exactly one application row exists
	var count int64
	require.NoError(t, db.Model(&models.Application{}).
		Where("project_id = ? AND contractor_id = ?", project.ID, contractor.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApplyToClosedProjectForbidden(t *testing.T) {
	svc, db := newProjectService(t)
	client := createTestUser(t, db, domain.RoleClient)
	contractor := createTestUser(t, db, domain.RoleContractor)
	project := createTestProject(t, db, client.ID, domain.ProjectStatusCompleted)

	_, err := svc.Apply(context.Background(), project.ID, contractor.ID, &ApplyInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApplyToMissingProject(t *testing.T) {
	svc, db := newProjectService(t)
	contractor := createTestUser(t, db, domain.RoleContractor)

	_, err := svc.Apply(context.Background(), 9999, contractor.ID, &ApplyInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListApplicationsOwnershipEnforced(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	owner := createTestUser(t, db, domain.RoleClient)
	otherClient := createTestUser(t, db, domain.RoleClient)
	contractor := createTestUser(t, db, domain.RoleContractor)
	admin := createTestUser(t, db, domain.RoleAdmin)
	project := createTestProject(t, db, owner.ID, domain.ProjectStatusOpen)

	_, err := svc.Apply(ctx, project.ID, contractor.ID, &ApplyInput{Message: "Available now"})
	require.NoError(t, err)

	// Another client cannot see applications on someone else's project
	_, err = svc.ListApplications(ctx, project.ID, otherClient.ID, domain.RoleClient)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// The owner can
	apps, err := svc.ListApplications(ctx, project.ID, owner.ID, domain.RoleClient)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	// Admins bypass ownership
	apps, err = svc.ListApplications(ctx, project.ID, admin.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestUpdateProjectStatusValidation(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	client := createTestUser(t, db, domain.RoleClient)
	project := createTestProject(t, db, client.ID, domain.ProjectStatusOpen)

	_, err := svc.UpdateStatus(ctx, project.ID, client.ID, domain.RoleClient, "finished")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := svc.UpdateStatus(ctx, project.ID, client.ID, domain.RoleClient, domain.ProjectStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusInProgress, updated.Status)
}

func TestUpdateApplicationStatusByProjectOwner(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	owner := createTestUser(t, db, domain.RoleClient)
	otherClient := createTestUser(t, db, domain.RoleClient)
	contractor := createTestUser(t, db, domain.RoleContractor)
	project := createTestProject(t, db, owner.ID, domain.ProjectStatusOpen)

	app, err := svc.Apply(ctx, project.ID, contractor.ID, &ApplyInput{Message: "Pick me"})
	require.NoError(t, err)

	// The decision belongs to the project owner, not any client
	_, err = svc.UpdateApplicationStatus(ctx, app.ID, otherClient.ID, domain.RoleClient, domain.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	decided, err := svc.UpdateApplicationStatus(ctx, app.ID, owner.ID, domain.RoleClient, domain.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusAccepted, decided.Status)
}

func TestProjectDeleteRemovesApplications(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	client := createTestUser(t, db, domain.RoleClient)
	contractor := createTestUser(t, db, domain.RoleContractor)
	project := createTestProject(t, db, client.ID, domain.ProjectStatusOpen)

	_, err := svc.Apply(ctx, project.ID, contractor.ID, &ApplyInput{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, project.ID))

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
