package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"dental-clinic-server/internal/config"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// InitDB initializes the database connection and runs migrations.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	// TranslateError lets duplicate-key violations surface as
	// gorm.ErrDuplicatedKey instead of driver-specific errors.
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Appointment{}, &Admin{}); err != nil {
		return nil, err
	}

	// Which field combination (if any) must be unique is a deployment
	// decision, not part of the base schema.
	if cfg.UniqueEmailPerDay && !db.Migrator().HasIndex(&Appointment{}, "idx_appointments_email_date") {
		if err := db.Exec(
			"CREATE UNIQUE INDEX idx_appointments_email_date ON appointments (email, date)",
		).Error; err != nil {
			return nil, err
		}
	}

	return db, nil
}
