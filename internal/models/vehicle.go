// internal/models/vehicle.go
package models

// VehicleRecord holds make/model/technical data for a vehicle, keyed by its
// normalized license plate and sourced from external providers. A POST for an
// existing plate overwrites every field; omitted optionals become null.
type VehicleRecord struct {
	BaseModel
	Plate        string  `json:"plate" gorm:"size:20;not null;uniqueIndex"`
	Source       string  `json:"source" gorm:"size:100;not null"`
	Title        string  `json:"title" gorm:"size:255;not null"`
	FullName     string  `json:"full_name" gorm:"size:255;not null"`
	Make         *string `json:"make,omitempty" gorm:"size:100"`
	Model        *string `json:"model,omitempty" gorm:"size:100"`
	Year         *int    `json:"year,omitempty"`
	Fuel         *string `json:"fuel,omitempty" gorm:"size:50"`
	Engine       *string `json:"engine,omitempty" gorm:"size:100"`
	Power        *string `json:"power,omitempty" gorm:"size:50"`
	Transmission *string `json:"transmission,omitempty" gorm:"size:50"`
	VIN          *string `json:"vin,omitempty" gorm:"size:50"`
	Extra        JSONB   `json:"extra,omitempty" gorm:"type:jsonb"`
}

func (VehicleRecord) TableName() string {
	return "vehicle_records"
}
