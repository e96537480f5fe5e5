package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type UserRole string

const (
	RolePhotographer UserRole = "photographer"
	RoleGuest        UserRole = "guest"
)

type User struct {
	ID    uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Phone string    `gorm:"uniqueIndex;not null"`
	Name  string
	Role  UserRole `gorm:"type:varchar(20);not null"`

	ProfilePic string
	IsVerified bool `gorm:"default:false"`

	// Stored face descriptor from the guest's last confirmed selfie.
	// Lets a returning guest re-scan without submitting a new descriptor.
	FaceDescriptor *pgvector.Vector `gorm:"type:vector(128)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Events      []Event      `gorm:"foreignKey:PhotographerID"`
	Memberships []EventGuest `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
