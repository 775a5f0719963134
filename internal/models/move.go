package models

// Move represents a row of the moves table. Power, PP, accuracy, effect chance
// and the contest references are nullable.
type Move struct {
	ID                   int64   `json:"id" gorm:"primaryKey"`
	Identifier           string  `json:"identifier"`
	GenerationID         int64   `json:"generation_id"`
	TypeID               int64   `json:"type_id"`
	Power                NullInt `json:"power"`
	PP                   NullInt `json:"pp" gorm:"column:pp"`
	Accuracy             NullInt `json:"accuracy"`
	Priority             int64   `json:"priority"`
	TargetID             int64   `json:"target_id"`
	DamageClassID        int64   `json:"damage_class_id"`
	EffectID             int64   `json:"effect_id"`
	EffectChance         NullInt `json:"effect_chance"`
	ContestTypeID        NullInt `json:"contest_type_id"`
	ContestEffectID      NullInt `json:"contest_effect_id"`
	SuperContestEffectID NullInt `json:"super_contest_effect_id"`
}

func (Move) TableName() string {
	return "moves"
}
