package handlers

import (
	"reflect"
	"strings"

	"pokedex/internal/models"

	"github.com/go-playground/validator/v10"
)

// newValidator reports fields by their JSON names and treats a NullInt as
// present when its key appeared in the body, even with a null value.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(models.NullInt); ok && n.Set {
			return true
		}
		return nil
	}, models.NullInt{})
	return v
}

type itemRequest struct {
	Identifier    string         `json:"identifier" validate:"required"`
	CategoryID    *int64         `json:"category_id" validate:"required"`
	Cost          *int64         `json:"cost" validate:"required"`
	FlingPower    models.NullInt `json:"fling_power"`
	FlingEffectID models.NullInt `json:"fling_effect_id"`
}

func (r itemRequest) toModel() *models.Item {
	return &models.Item{
		Identifier:    r.Identifier,
		CategoryID:    *r.CategoryID,
		Cost:          *r.Cost,
		FlingPower:    r.FlingPower,
		FlingEffectID: r.FlingEffectID,
	}
}

// moveRequest requires every column. Nullable columns accept an explicit null
// but not an absent key.
type moveRequest struct {
	Identifier           string         `json:"identifier" validate:"required"`
	GenerationID         *int64         `json:"generation_id" validate:"required"`
	TypeID               *int64         `json:"type_id" validate:"required"`
	Power                models.NullInt `json:"power" validate:"required"`
	PP                   models.NullInt `json:"pp" validate:"required"`
	Accuracy             models.NullInt `json:"accuracy" validate:"required"`
	Priority             *int64         `json:"priority" validate:"required"`
	TargetID             *int64         `json:"target_id" validate:"required"`
	DamageClassID        *int64         `json:"damage_class_id" validate:"required"`
	EffectID             *int64         `json:"effect_id" validate:"required"`
	EffectChance         models.NullInt `json:"effect_chance" validate:"required"`
	ContestTypeID        models.NullInt `json:"contest_type_id" validate:"required"`
	ContestEffectID      models.NullInt `json:"contest_effect_id" validate:"required"`
	SuperContestEffectID models.NullInt `json:"super_contest_effect_id" validate:"required"`
}

func (r moveRequest) toModel() *models.Move {
	return &models.Move{
		Identifier:           r.Identifier,
		GenerationID:         *r.GenerationID,
		TypeID:               *r.TypeID,
		Power:                r.Power,
		PP:                   r.PP,
		Accuracy:             r.Accuracy,
		Priority:             *r.Priority,
		TargetID:             *r.TargetID,
		DamageClassID:        *r.DamageClassID,
		EffectID:             *r.EffectID,
		EffectChance:         r.EffectChance,
		ContestTypeID:        r.ContestTypeID,
		ContestEffectID:      r.ContestEffectID,
		SuperContestEffectID: r.SuperContestEffectID,
	}
}

// typeRequest rejects zero ids along with missing ones.
type typeRequest struct {
	Identifier    string `json:"identifier" validate:"required"`
	GenerationID  int64  `json:"generation_id" validate:"required"`
	DamageClassID int64  `json:"damage_class_id" validate:"required"`
}

func (r typeRequest) toModel() *models.Type {
	return &models.Type{
		Identifier:    r.Identifier,
		GenerationID:  r.GenerationID,
		DamageClassID: r.DamageClassID,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
