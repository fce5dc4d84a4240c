package services

import (
	"os"
	"path/filepath"
	"testing"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUploadFile(t *testing.T, store *upload.Store, kind, name string) string {
	t.Helper()
	path := filepath.Join(store.Root(), kind, name)
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o644))
	return "/uploads/" + kind + "/" + name
}

func TestSweepOrphanedUploads(t *testing.T) {
	db := setupTestDB(t)
	store := setupTestUploads(t)
	svc := NewMaintenanceService(db, store)

	contractor := createTestUser(t, db, domain.RoleContractor)

	// One file referenced by an offer, one orphan
	referenced := writeUploadFile(t, store, upload.KindOffers, "kept.jpg")
	orphanURL := writeUploadFile(t, store, upload.KindOffers, "orphan.jpg")

	require.NoError(t, db.Create(&models.Offer{
		ContractorID: contractor.ID,
		Title:        "Offer with image",
		Description:  "desc",
		Location:     "Murcia",
		Rate:         "20/hour",
		Images:       []string{referenced},
		Status:       domain.OfferStatusActive,
	}).Error)

	require.NoError(t, svc.SweepOrphanedUploads())

	_, err := os.Stat(filepath.Join(store.Root(), "offers", "kept.jpg"))
	assert.NoError(t, err, "referenced file must survive the sweep")

	_, err = os.Stat(filepath.Join(store.Root(), "offers", "orphan.jpg"))
	assert.True(t, os.IsNotExist(err), "orphan %s must be removed", orphanURL)
}

func TestSweepKeepsProfileAndMessageFiles(t *testing.T) {
	db := setupTestDB(t)
	store := setupTestUploads(t)
	svc := NewMaintenanceService(db, store)

	user := createTestUser(t, db, domain.RoleClient)
	peer := createTestUser(t, db, domain.RoleContractor)

	profileURL := writeUploadFile(t, store, upload.KindProfiles, "me.png")
	attachmentURL := writeUploadFile(t, store, upload.KindAttachments, "doc.png")

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("profile_image", profileURL).Error)

	conversation := &models.Conversation{}
	require.NoError(t, db.Create(conversation).Error)
	require.NoError(t, db.Create(&models.ConversationParticipant{ConversationID: conversation.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.ConversationParticipant{ConversationID: conversation.ID, UserID: peer.ID}).Error)
	require.NoError(t, db.Create(&models.Message{
		ConversationID: conversation.ID,
		SenderID:       user.ID,
		Content:        "see attached",
		Attachments:    []string{attachmentURL},
	}).Error)

	require.NoError(t, svc.SweepOrphanedUploads())

	_, err := os.Stat(filepath.Join(store.Root(), "profiles", "me.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(store.Root(), "attachments", "doc.png"))
	assert.NoError(t, err)
}
