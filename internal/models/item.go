package models

// Item represents a held or bag item. Fling power and fling effect are optional.
type Item struct {
	ID            int64   `json:"id" gorm:"primaryKey"`
	Identifier    string  `json:"identifier"`
	CategoryID    int64   `json:"category_id"`
	Cost          int64   `json:"cost"`
	FlingPower    NullInt `json:"fling_power"`
	FlingEffectID NullInt `json:"fling_effect_id"`
}

func (Item) TableName() string {
	return "items"
}
