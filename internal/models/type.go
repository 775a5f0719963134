package models

// Type represents an elemental type.
type Type struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	Identifier    string `json:"identifier"`
	GenerationID  int64  `json:"generation_id"`
	DamageClassID int64  `json:"damage_class_id"`
}

func (Type) TableName() string {
	return "types"
}
