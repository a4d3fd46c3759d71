package models

import "time"

// LocationCategory groups courses by province. ValidCounties holds the
// county names a course in this province may belong to.
type LocationCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Province      string   `gorm:"size:100;not null" json:"province"`
	ValidCounties []string `gorm:"serializer:json;type:text" json:"validCounties"`

	LastUpdatedByID *uint `json:"lastUpdatedById"`
	LastUpdatedBy   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"lastUpdatedBy,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *LocationCategory) CheckValidCounty(county string) bool {
	for _, v := range c.ValidCounties {
		if v == county {
			return true
		}
	}
	return false
}
