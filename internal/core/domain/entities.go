package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleContractor Role = "contractor"
)

// CanRegister reports whether the role is one a user can self-register with.
// Admin accounts are only created through the seeder.
func (r Role) CanRegister() bool {
	return r == RoleClient || r == RoleContractor
}

// User status
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// Offer status
const (
	OfferStatusActive    = "active"
	OfferStatusCompleted = "completed"
	OfferStatusCancelled = "cancelled"
)

// Project status
const (
	ProjectStatusOpen       = "open"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Application status
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusCompleted = "completed"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusCompleted:
		return true
	}
	return false
}
