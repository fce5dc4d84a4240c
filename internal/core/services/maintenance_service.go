package services

import (
	"log"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/pkg/upload"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// MaintenanceService runs scheduled housekeeping jobs
type MaintenanceService struct {
	cron    *cron.Cron
	db      *gorm.DB
	uploads *upload.Store
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(db *gorm.DB, uploads *upload.Store) *MaintenanceService {
	return &MaintenanceService{
		cron:    cron.New(),
		db:      db,
		uploads: uploads,
	}
}

// Start registers and starts all scheduled jobs
func (s *MaintenanceService) Start() {
	// Sweep orphaned upload files nightly at 03:00
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.SweepOrphanedUploads(); err != nil {
			log.Printf("❌ Orphaned upload sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("❌ Failed to schedule upload sweep: %v", err)
		return
	}

	s.cron.Start()
	log.Println("✅ Maintenance jobs scheduled")
}

// Stop stops the scheduler, waiting for running jobs to finish
func (s *MaintenanceService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Maintenance jobs stopped")
}

// SweepOrphanedUploads deletes files on disk that no database row
// references anymore. File deletion is best-effort at request time, so
// aborted transactions and crashed cleanups leave strays behind; this
// job reclaims them.
func (s *MaintenanceService) SweepOrphanedUploads() error {
	referenced, err := s.referencedPaths()
	if err != nil {
		return err
	}

	stored, err := s.uploads.ListFiles()
	if err != nil {
		return err
	}

	removed := 0
	for _, path := range stored {
		if !referenced[path] {
			s.uploads.Remove(path)
			removed++
		}
	}

	log.Printf("✅ Upload sweep complete: %d stored, %d orphaned files removed", len(stored), removed)
	return nil
}

// referencedPaths collects every upload URL still referenced by a row
func (s *MaintenanceService) referencedPaths() (map[string]bool, error) {
	referenced := make(map[string]bool)

	var users []models.User
	if err := s.db.Select("profile_image").Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ProfileImage != "" {
			referenced[u.ProfileImage] = true
		}
	}

	var offers []models.Offer
	if err := s.db.Select("images").Find(&offers).Error; err != nil {
		return nil, err
	}
	for _, o := range offers {
		for _, img := range o.Images {
			referenced[img] = true
		}
	}

	var portfolioImages []models.PortfolioImage
	if err := s.db.Select("image_url").Find(&portfolioImages).Error; err != nil {
		return nil, err
	}
	for _, img := range portfolioImages {
		if img.ImageURL != "" {
			referenced[img.ImageURL] = true
		}
	}

	var posts []models.FeedPost
	if err := s.db.Select("images").Find(&posts).Error; err != nil {
		return nil, err
	}
	for _, p := range posts {
		for _, img := range p.Images {
			referenced[img] = true
		}
	}

	var messages []models.Message
	if err := s.db.Select("attachments").Find(&messages).Error; err != nil {
		return nil, err
	}
	for _, m := range messages {
		for _, a := range m.Attachments {
			referenced[a] = true
		}
	}

	return referenced, nil
}
