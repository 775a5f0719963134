package models

// Creature is a row of the pokemon table. Associations are resolved through
// join lookups, not stored on the record.
type Creature struct {
	ID             int64  `json:"id" gorm:"primaryKey"`
	Identifier     string `json:"identifier"`
	SpeciesID      int64  `json:"species_id"`
	Height         int64  `json:"height"`
	Weight         int64  `json:"weight"`
	BaseExperience int64  `json:"base_experience"`
	Order          int64  `json:"order" gorm:"column:order"`
	IsDefault      bool   `json:"is_default"`
}

func (Creature) TableName() string {
	return "pokemon"
}

// NamedRef is the lightweight id + identifier pair returned by join lookups.
type NamedRef struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
}
