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

func newAdminService(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewAdminService(
		repositories.NewUserRepository(db),
		repositories.NewProjectRepository(db),
		setupTestUploads(t),
		db,
	)
	return svc, db
}

// seedContractorData gives a contractor one of everything that the
// cascade must remove
func seedContractorData(t *testing.T, db *gorm.DB, contractorID, peerID uint) {
	t.Helper()

	require.NoError(t, db.Create(&models.Offer{
		ContractorID: contractorID,
		Title:        "Electrical work",
		Description:  "Rewiring",
		Location:     "Zaragoza",
		Rate:         "40/hour",
		Status:       domain.OfferStatusActive,
	}).Error)

	portfolio := &models.PortfolioProject{ContractorID: contractorID, Title: "Old job"}
	require.NoError(t, db.Create(portfolio).Error)
	require.NoError(t, db.Create(&models.PortfolioImage{
		ProjectID: portfolio.ID,
		ImageURL:  "/uploads/portfolio/a.jpg",
	}).Error)

	conversation := &models.Conversation{}
	require.NoError(t, db.Create(conversation).Error)
	require.NoError(t, db.Create(&models.ConversationParticipant{
		ConversationID: conversation.ID, UserID: contractorID,
	}).Error)
	require.NoError(t, db.Create(&models.ConversationParticipant{
		ConversationID: conversation.ID, UserID: peerID,
	}).Error)
	require.NoError(t, db.Create(&models.Message{
		ConversationID: conversation.ID,
		SenderID:       contractorID,
		Content:        "hello",
	}).Error)
	require.NoError(t, db.Create(&models.Message{
		ConversationID: conversation.ID,
		SenderID:       peerID,
		Content:        "hello back",
	}).Error)

	require.NoError(t, db.Create(&models.FeedPost{
		UserID:  contractorID,
		Content: "Just finished a big job",
	}).Error)
}

func TestDeleteUserCascade(t *testing.T) {
	svc, db := newAdminService(t)
	ctx := context.Background()

	contractor := createTestUser(t, db, domain.RoleContractor)
	client := createTestUser(t, db, domain.RoleClient)
	seedContractorData(t, db, contractor.ID, client.ID)

	// The contractor also applied to the client's project
	project := createTestProject(t, db, client.ID, domain.ProjectStatusOpen)
	require.NoError(t, db.Create(&models.Application{
		ProjectID:    project.ID,
		ContractorID: contractor.ID,
		Status:       domain.ApplicationStatusPending,
	}).Error)

	require.NoError(t, svc.DeleteUser(ctx, contractor.ID))

	// Every dependent record is gone
	assertCount := func(model interface{}, query string, want int64) {
		t.Helper()
		var count int64
		require.NoError(t, db.Model(model).Where(query, contractor.ID).Count(&count).Error)
		assert.EqualValues(t, want, count)
	}
	assertCount(&models.User{}, "id = ?", 0)
	assertCount(&models.Offer{}, "contractor_id = ?", 0)
	assertCount(&models.PortfolioProject{}, "contractor_id = ?", 0)
	assertCount(&models.Application{}, "contractor_id = ?", 0)
	assertCount(&models.Message{}, "sender_id = ?", 0)
	assertCount(&models.ConversationParticipant{}, "user_id = ?", 0)
	assertCount(&models.FeedPost{}, "user_id = ?", 0)

	// Shared conversations go away entirely: the peer's messages and
	// participant rows do not linger in an empty conversation
	var convCount, peerMsgCount, peerPartCount int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&convCount).Error)
	require.NoError(t, db.Model(&models.Message{}).Where("sender_id = ?", client.ID).Count(&peerMsgCount).Error)
	require.NoError(t, db.Model(&models.ConversationParticipant{}).Where("user_id = ?", client.ID).Count(&peerPartCount).Error)
	assert.EqualValues(t, 0, convCount)
	assert.EqualValues(t, 0, peerMsgCount)
	assert.EqualValues(t, 0, peerPartCount)

	// The client and their project are untouched
	var clientCount, projectCount int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", client.ID).Count(&clientCount).Error)
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount).Error)
	assert.EqualValues(t, 1, clientCount)
	assert.EqualValues(t, 1, projectCount)
}

func TestDeleteUserRollsBackOnFailure(t *testing.T) {
	svc, db := newAdminService(t)
	ctx := context.Background()

	contractor := createTestUser(t, db, domain.RoleContractor)
	client := createTestUser(t, db, domain.RoleClient)
	seedContractorData(t, db, contractor.ID, client.ID)

	// Force a mid-cascade failure: the messages step has no table to
	// delete from, so the transaction must roll back wholesale
	require.NoError(t, db.Migrator().DropTable(&models.Message{}))

	err := svc.DeleteUser(ctx, contractor.ID)
	assert.ErrorIs(t, err, domain.ErrDeletionFailed)

	// Nothing was deleted
	var userCount, offerCount, feedCount int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", contractor.ID).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Offer{}).Where("contractor_id = ?", contractor.ID).Count(&offerCount).Error)
	require.NoError(t, db.Model(&models.FeedPost{}).Where("user_id = ?", contractor.ID).Count(&feedCount).Error)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, offerCount)
	assert.EqualValues(t, 1, feedCount)
}

func TestDeleteUserAdminTargetForbidden(t *testing.T) {
	svc, db := newAdminService(t)
	admin := createTestUser(t, db, domain.RoleAdmin)

	err := svc.DeleteUser(context.Background(), admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteUserNotFound(t *testing.T) {
	svc, _ := newAdminService(t)

	err := svc.DeleteUser(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateUserStatus(t *testing.T) {
	svc, db := newAdminService(t)
	ctx := context.Background()
	user := createTestUser(t, db, domain.RoleClient)
	admin := createTestUser(t, db, domain.RoleAdmin)

	_, err := svc.UpdateUserStatus(ctx, user.ID, "banned")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateUserStatus(ctx, admin.ID, domain.UserStatusSuspended)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := svc.UpdateUserStatus(ctx, user.ID, domain.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusSuspended, updated.Status)
}

func TestPlatformStats(t *testing.T) {
	svc, db := newAdminService(t)
	ctx := context.Background()

	client := createTestUser(t, db, domain.RoleClient)
	contractor := createTestUser(t, db, domain.RoleContractor)
	createTestUser(t, db, domain.RoleAdmin)
	project := createTestProject(t, db, client.ID, domain.ProjectStatusOpen)
	createTestProject(t, db, client.ID, domain.ProjectStatusCompleted)
	require.NoError(t, db.Create(&models.Application{
		ProjectID: project.ID, ContractorID: contractor.ID, Status: domain.ApplicationStatusPending,
	}).Error)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Users.TotalUsers) // admins excluded
	assert.EqualValues(t, 1, stats.Users.ClientCount)
	assert.EqualValues(t, 1, stats.Users.ContractorCount)
	assert.EqualValues(t, 2, stats.Projects.TotalProjects)
	assert.EqualValues(t, 1, stats.Projects.OpenProjects)
	assert.EqualValues(t, 1, stats.Projects.CompletedProjects)
	assert.EqualValues(t, 1, stats.TotalApplications)
}
