package model

import (
	"time"

	"gorm.io/gorm"

	"game_store/internal/validation"
)

// Game 游戏条目。必须挂在一个 SystemRequirement 之下。
type Game struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Mode        GameMode  `gorm:"not null" json:"mode"`
	ReleaseDate time.Time `gorm:"not null" json:"release_date"`
	Developer   string    `gorm:"size:255;not null" json:"developer"`

	SystemRequirementID uint               `gorm:"not null;index" json:"system_requirement_id"`
	SystemRequirement   *SystemRequirement `json:"-"`

	Product *Product `gorm:"foreignKey:GameID" json:"-"`
}

func (Game) TableName() string { return "games" }

// Validate 完整执行游戏条目的全部规则。
func (g *Game) Validate(tx *gorm.DB) (validation.FieldErrors, error) {
	errs := validation.Run(
		validation.Rule{Field: "mode", Message: validation.MsgBlank, Check: func() bool {
			return g.Mode != 0
		}},
		validation.Rule{Field: "mode", Message: validation.MsgNotIncluded, Check: func() bool {
			return g.Mode == 0 || g.Mode.Valid()
		}},
		validation.Rule{Field: "release_date", Message: validation.MsgBlank, Check: func() bool {
			return !g.ReleaseDate.IsZero()
		}},
		validation.Rule{Field: "developer", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(g.Developer)
		}},
		validation.Rule{Field: "system_requirement", Message: validation.MsgBlank, Check: func() bool {
			return g.SystemRequirementID != 0
		}},
	)
	return errs, nil
}
