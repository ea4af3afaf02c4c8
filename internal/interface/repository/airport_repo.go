package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// AirportList GORM model for database mapping
type AirportList struct {
	gorm.Model
	ID          uint           `gorm:"primaryKey"`
	AirportCode string         `gorm:"column:airportcode;unique"`
	AirportName string         `gorm:"column:airport_name"`
	CityCode    string         `gorm:"column:citycode"`
	CityName    string         `gorm:"column:cityname"`
	TzName      string         `gorm:"column:tzname"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (AirportList) TableName() string {
	return "m_airport_list"
}

// GetByCode finds an airport by IATA code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport AirportList
	result := r.db.WithContext(ctx).Where("airportcode = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:          airport.ID,
		AirportCode: airport.AirportCode,
		AirportName: airport.AirportName,
		CityCode:    airport.CityCode,
		CityName:    airport.CityName,
		TzName:      airport.TzName,
		CreatedAt:   airport.CreatedAt,
		UpdatedAt:   airport.UpdatedAt,
		DeletedAt:   airport.DeletedAt,
	}, nil
}
