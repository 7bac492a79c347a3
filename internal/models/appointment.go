package models

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
)

// Field maxima enforced both by the validation layer and the table schema.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 100
	MaxPhoneLength   = 20
	MaxMessageLength = 500
)

// DefaultService is substituted when a submission omits the service field.
const DefaultService = "General Checkup"

// DefaultLanguage is used when a deployment makes the language field optional.
const DefaultLanguage = "vietnamese"

// Languages is the closed set of accepted patient languages.
var Languages = []string{"vietnamese", "english", "simplified", "traditional", "french", "korean"}

// IsValidLanguage reports whether lang (case-insensitive) is an accepted language.
func IsValidLanguage(lang string) bool {
	lang = strings.ToLower(lang)
	for _, l := range Languages {
		if lang == l {
			return true
		}
	}
	return false
}

// Appointment represents a booking request submitted through the public website.
type Appointment struct {
	BaseModel
	Name     string            `gorm:"size:100;not null" json:"name"`
	Email    string            `gorm:"size:100;not null;index" json:"email"`
	Phone    string            `gorm:"size:20;not null" json:"phone"`
	Date     *time.Time        `gorm:"type:date" json:"date,omitempty"`
	Service  string            `gorm:"size:100;default:'General Checkup'" json:"service"`
	Message  string            `gorm:"size:500" json:"message"`
	Language string            `gorm:"size:20;default:'vietnamese'" json:"language"`
	Status   AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
}

// Validate enforces the record schema before the row reaches the database:
// required fields non-empty, lengths within maxima, language in the closed set.
func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if strings.TrimSpace(a.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if len(a.Name) > MaxNameLength {
		return fmt.Errorf("name exceeds %d characters", MaxNameLength)
	}
	if len(a.Email) > MaxEmailLength {
		return fmt.Errorf("email exceeds %d characters", MaxEmailLength)
	}
	if len(a.Phone) > MaxPhoneLength {
		return fmt.Errorf("phone exceeds %d characters", MaxPhoneLength)
	}
	if len(a.Message) > MaxMessageLength {
		return fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}
	if a.Language != "" && !IsValidLanguage(a.Language) {
		return fmt.Errorf("language must be one of: %s", strings.Join(Languages, ", "))
	}
	return nil
}
