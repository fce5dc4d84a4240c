package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Role         string    `gorm:"size:20;not null;default:'client';index" json:"role"`
	Status       string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Phone        string    `gorm:"size:30" json:"phone"`
	ProfileImage string    `gorm:"size:255" json:"profile_image"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Skills       []string  `gorm:"serializer:json" json:"skills"`
	Rating       float64   `gorm:"default:0" json:"rating"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the sanitized outward view of a user. The password
// hash is omitted by construction: it has no field here, so no call
// site can leak it.
type UserResponse struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Status:       u.Status,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
		Skills:       u.Skills,
		Rating:       u.Rating,
		CreatedAt:    u.CreatedAt,
	}
}

// ============================================================
// Offers
// ============================================================

// Offer represents offers table
type Offer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ContractorID uint      `gorm:"not null;index" json:"contractor_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Location     string    `gorm:"size:200;not null" json:"location"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Rate         string    `gorm:"size:50;not null" json:"rate"`
	Images       []string  `gorm:"serializer:json" json:"images"`
	Status       string    `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Contractor *User `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
}

func (Offer) TableName() string {
	return "offers"
}

// OfferResponse DTO
type OfferResponse struct {
	ID             uint      `json:"id"`
	ContractorID   uint      `json:"contractor_id"`
	ContractorName string    `json:"contractor_name,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Rate           string    `json:"rate"`
	Images         []string  `json:"images"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (o *Offer) ToResponse() *OfferResponse {
	resp := &OfferResponse{
		ID:           o.ID,
		ContractorID: o.ContractorID,
		Title:        o.Title,
		Description:  o.Description,
		Location:     o.Location,
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		Rate:         o.Rate,
		Images:       o.Images,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.Contractor != nil {
		resp.ContractorName = o.Contractor.FirstName + " " + o.Contractor.LastName
	}
	return resp
}

// ============================================================
// Projects & Applications
// ============================================================

// Project represents project_posts table
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ClientID    uint       `gorm:"not null;index" json:"client_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Budget      float64    `gorm:"type:decimal(15,2)" json:"budget"`
	Location    string     `gorm:"size:200" json:"location"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `gorm:"size:20;not null;default:'open';index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Project) TableName() string {
	return "project_posts"
}

// ProjectResponse DTO
type ProjectResponse struct {
	ID                uint       `json:"id"`
	ClientID          uint       `json:"client_id"`
	ClientName        string     `json:"client_name,omitempty"`
	ClientEmail       string     `json:"client_email,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Budget            float64    `json:"budget"`
	Location          string     `json:"location"`
	Deadline          *time.Time `json:"deadline"`
	Status            string     `json:"status"`
	ApplicationsCount int64      `json:"applications_count,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (p *Project) ToResponse() *ProjectResponse {
	resp := &ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Title:       p.Title,
		Description: p.Description,
		Budget:      p.Budget,
		Location:    p.Location,
		Deadline:    p.Deadline,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Client != nil {
		resp.ClientName = p.Client.FirstName + " " + p.Client.LastName
		resp.ClientEmail = p.Client.Email
	}
	return resp
}

// Application represents project_applications table.
// The composite unique index enforces at most one application per
// (project, contractor) pair at the store level.
type Application struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"not null;uniqueIndex:idx_project_contractor" json:"project_id"`
	ContractorID uint      `gorm:"not null;uniqueIndex:idx_project_contractor" json:"contractor_id"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Contractor *User    `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
}

func (Application) TableName() string {
	return "project_applications"
}

// ApplicationResponse DTO
type ApplicationResponse struct {
	ID             uint      `json:"id"`
	ProjectID      uint      `json:"project_id"`
	ProjectTitle   string    `json:"project_title,omitempty"`
	ContractorID   uint      `json:"contractor_id"`
	ContractorName string    `json:"contractor_name,omitempty"`
	Message        string    `json:"message"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (a *Application) ToResponse() *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		ContractorID: a.ContractorID,
		Message:      a.Message,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
	}
	if a.Project != nil {
		resp.ProjectTitle = a.Project.Title
	}
	if a.Contractor != nil {
		resp.ContractorName = a.Contractor.FirstName + " " + a.Contractor.LastName
	}
	return resp
}

// ============================================================
// Portfolio
// ============================================================

// PortfolioProject represents portfolio_projects table
type PortfolioProject struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ContractorID   uint       `gorm:"not null;index" json:"contractor_id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	CompletionDate *time.Time `gorm:"type:date" json:"completion_date"`
	ClientName     string     `gorm:"size:200" json:"client_name"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Images []PortfolioImage `gorm:"foreignKey:ProjectID" json:"images,omitempty"`
}

func (PortfolioProject) TableName() string {
	return "portfolio_projects"
}

// PortfolioImage represents project_images table
type PortfolioImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	ImageURL  string    `gorm:"size:255;not null" json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PortfolioImage) TableName() string {
	return "project_images"
}

// ============================================================
// Messaging
// ============================================================

// Conversation represents conversations table
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OfferID   *uint     `gorm:"index" json:"offer_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Offer        *Offer                    `gorm:"foreignKey:OfferID" json:"offer,omitempty"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationParticipant represents conversation_participants table
type ConversationParticipant struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ConversationID uint `gorm:"not null;uniqueIndex:idx_conversation_user" json:"conversation_id"`
	UserID         uint `gorm:"not null;uniqueIndex:idx_conversation_user" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

// ConversationResponse DTO
type ConversationResponse struct {
	ID           uint            `json:"id"`
	OfferID      *uint           `json:"offer_id"`
	OfferTitle   string          `json:"offer_title,omitempty"`
	Participants []*UserResponse `json:"participants,omitempty"`
	UnreadCount  int64           `json:"unread_count"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Message represents messages table
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Attachments    []string  `gorm:"serializer:json" json:"attachments"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageResponse DTO
type MessageResponse struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	SenderName     string    `json:"sender_name,omitempty"`
	Content        string    `json:"content"`
	Attachments    []string  `json:"attachments"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *Message) ToResponse() *MessageResponse {
	resp := &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Attachments:    m.Attachments,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.FirstName + " " + m.Sender.LastName
	}
	return resp
}

// ============================================================
// Feed
// ============================================================

// FeedPost represents feed_posts table
type FeedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Images    []string  `gorm:"serializer:json" json:"images"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

func (FeedPost) TableName() string {
	return "feed_posts"
}

// FeedPostResponse DTO
type FeedPostResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	AuthorRole string    `json:"author_role,omitempty"`
	Content    string    `json:"content"`
	Images     []string  `json:"images"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *FeedPost) ToResponse() *FeedPostResponse {
	resp := &FeedPostResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		Content:   f.Content,
		Images:    f.Images,
		CreatedAt: f.CreatedAt,
	}
	if f.Author != nil {
		resp.AuthorName = f.Author.FirstName + " " + f.Author.LastName
		resp.AuthorRole = f.Author.Role
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Offer{},
		&Project{},
		&Application{},
		&PortfolioProject{},
		&PortfolioImage{},
		&Conversation{},
		&ConversationParticipant{},
		&Message{},
		&FeedPost{},
	)
}
