package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// User is an account row. Role is informational only; no endpoint enforces
// role-based authorization.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:64;not null" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      string    `gorm:"size:32;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// HashPassword applies a single unsalted SHA-256 round. This matches the
// stored hashes of existing databases; see DESIGN.md before changing it.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
