package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents airport reference data keyed by IATA code, including
// the IANA timezone name for local-time rendering.
type Airport struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
