package models

import "time"

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `gorm:"size:20;default:'Point'" json:"type"`
	Coordinates []float64 `gorm:"serializer:json;type:text" json:"coordinates"`
}

type GolfPOI struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CourseName string `gorm:"size:150;not null" json:"courseName"`
	CourseDesc string `gorm:"type:text" json:"courseDesc"`

	LastUpdatedByID *uint `json:"lastUpdatedById"`
	LastUpdatedBy   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"lastUpdatedBy,omitempty"`

	CategoryID *uint             `json:"categoryId"`
	Category   *LocationCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	// Opaque ids of images held by the external media host, in upload order.
	RelatedImages []string `gorm:"serializer:json;type:text" json:"relatedImages"`

	Location GeoPoint `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
