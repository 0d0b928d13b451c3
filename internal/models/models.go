package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Role is the coarse-grained authorization category, distinct from approval status
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the enumerated values
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ApprovalStatus is the admin-controlled gate on member-only access
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Valid reports whether the status is one of the enumerated values
func (s ApprovalStatus) Valid() bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}

// ClubWing identifies which wing of the club a member belongs to
type ClubWing string

const (
	WingTech     ClubWing = "TECH"
	WingMedia    ClubWing = "MEDIA"
	WingEvents   ClubWing = "EVENTS"
	WingOutreach ClubWing = "OUTREACH"
)

// PaymentMethod is the method used for the membership fee
type PaymentMethod string

const (
	PaymentBkash PaymentMethod = "BKASH"
	PaymentNagad PaymentMethod = "NAGAD"
	PaymentCash  PaymentMethod = "CASH"
)

// User represents a club member account
type User struct {
	BaseModel
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`

	Role           Role           `json:"role" gorm:"type:varchar(16);not null;default:user"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" gorm:"type:varchar(16);not null;default:PENDING"`

	// Profile fields, passed through opaquely by the auth core
	Phone           string        `json:"phone"`
	Department      string        `json:"department"`
	StudentID       string        `json:"studentId"`
	ClubWing        ClubWing      `json:"clubWing" gorm:"type:varchar(16)"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" gorm:"type:varchar(16)"`
	TransactionID   string        `json:"transactionId"`
	ProfilePhotoURL string        `json:"profilePhotoUrl"`

	// Soft-deleted members are hidden from listings but restorable
	Deleted   bool      `json:"deleted" gorm:"not null;default:false"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// IsApproved reports whether the member may access member-only areas
func (u *User) IsApproved() bool {
	return u.ApprovalStatus == ApprovalApproved
}

// Event represents a club event with an optional cover image and attachments
type Event struct {
	BaseModel
	Title          string    `json:"title" gorm:"not null"`
	Description    string    `json:"description" gorm:"type:text"`
	Location       string    `json:"location"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	CoverImageURL  string    `json:"coverImageUrl"`
	AttachmentURLs []string  `json:"attachmentUrls" gorm:"serializer:json"`
	CreatedByID    string    `json:"createdById"`
}

// Notice represents a published club notice
type Notice struct {
	BaseModel
	Title          string    `json:"title" gorm:"not null"`
	Body           string    `json:"body" gorm:"type:text"`
	AttachmentURLs []string  `json:"attachmentUrls" gorm:"serializer:json"`
	PublishedAt    time.Time `json:"publishedAt"`
	CreatedByID    string    `json:"createdById"`
}

// AlumniProfile represents a former member listed on the alumni page
type AlumniProfile struct {
	BaseModel
	Name            string `json:"name" gorm:"not null"`
	Email           string `json:"email"`
	GraduationYear  int    `json:"graduationYear"`
	Occupation      string `json:"occupation"`
	Company         string `json:"company"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

// GalleryItem represents a single photo in the club gallery
type GalleryItem struct {
	BaseModel
	Title    string   `json:"title"`
	Caption  string   `json:"caption"`
	ImageURL string   `json:"imageUrl" gorm:"not null"`
	ClubWing ClubWing `json:"clubWing" gorm:"type:varchar(16)"`
}

// Advisor represents a faculty advisor of the club
type Advisor struct {
	BaseModel
	Name            string `json:"name" gorm:"not null"`
	Designation     string `json:"designation"`
	Department      string `json:"department"`
	Email           string `json:"email"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

// ExecutiveMember represents a member of the executive body
type ExecutiveMember struct {
	BaseModel
	Name            string   `json:"name" gorm:"not null"`
	Position        string   `json:"position" gorm:"not null"`
	ClubWing        ClubWing `json:"clubWing" gorm:"type:varchar(16)"`
	Year            int      `json:"year"`
	Email           string   `json:"email"`
	ProfilePhotoURL string   `json:"profilePhotoUrl"`
}

// StudentRegistration is the typed registration form submitted by new members.
// Constrained fields use enumerated variants so invalid values are caught at
// the boundary instead of reaching the server as free-form strings.
type StudentRegistration struct {
	Name          string        `json:"name" validate:"required"`
	Email         string        `json:"email" validate:"required,email"`
	Password      string        `json:"password" validate:"required,min=8"`
	Phone         string        `json:"phone" validate:"required"`
	Department    string        `json:"department" validate:"required"`
	StudentID     string        `json:"studentId" validate:"required"`
	ClubWing      ClubWing      `json:"clubWing" validate:"required,oneof=TECH MEDIA EVENTS OUTREACH"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=BKASH NAGAD CASH"`
	TransactionID string        `json:"transactionId" validate:"required_unless=PaymentMethod CASH"`
}

var validate = validator.New()

// ValidateStruct validates a struct against its validate tags
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ServerConfig is the singleton server configuration row (only one should exist)
type ServerConfig struct {
	BaseModel
	JWTSecret string `json:"-" gorm:"type:varchar(64);not null"` // Auto-generated on first setup (64 hex chars)
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Event{}, &Notice{}, &AlumniProfile{},
		&GalleryItem{}, &Advisor{}, &ExecutiveMember{}, &ServerConfig{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}
