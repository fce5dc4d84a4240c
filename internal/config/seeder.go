package config

import (
	"log"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin user. Registration only
// accepts client and contractor roles, so the first admin must come
// from here (or a manual insert in production).
func (s *Seeder) seedAdminUser() error {
	// Check if an admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	adminEmail := getEnv("ADMIN_EMAIL", "admin@servini.net")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin123456")

	hashedPassword, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName: "Servini",
		LastName:  "Admin",
		Email:     adminEmail,
		Password:  hashedPassword,
		Role:      string(domain.RoleAdmin),
		Status:    domain.UserStatusActive,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
