package model

import (
	"time"

	"gorm.io/gorm"

	"game_store/internal/validation"
)

// SystemRequirement 游戏运行配置要求。
// 被任一 Game 引用期间禁止删除（restrict-with-error，守卫在 store 层）。
type SystemRequirement struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name              string `gorm:"type:varchar(100) collate nocase;not null;uniqueIndex" json:"name"`
	OperationalSystem string `gorm:"size:100;not null" json:"operational_system"`
	Storage           string `gorm:"size:50;not null" json:"storage"`
	Processor         string `gorm:"size:100;not null" json:"processor"`
	Memory            string `gorm:"size:50;not null" json:"memory"`
	VideoBoard        string `gorm:"size:100;not null" json:"video_board"`

	Games []Game `gorm:"foreignKey:SystemRequirementID" json:"-"`
}

func (SystemRequirement) TableName() string { return "system_requirements" }

// Validate 完整执行配置要求的全部规则。
func (s *SystemRequirement) Validate(tx *gorm.DB) (validation.FieldErrors, error) {
	errs := validation.Run(
		validation.Rule{Field: "name", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(s.Name)
		}},
		validation.Rule{Field: "operational_system", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(s.OperationalSystem)
		}},
		validation.Rule{Field: "storage", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(s.Storage)
		}},
		validation.Rule{Field: "processor", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(s.Processor)
		}},
		validation.Rule{Field: "memory", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(s.Memory)
		}},
		validation.Rule{Field: "video_board", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(s.VideoBoard)
		}},
	)
	if !validation.Blank(s.Name) {
		taken, err := validation.Taken(tx, &SystemRequirement{}, "name", s.Name, s.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("name", validation.MsgTaken)
		}
	}
	return errs, nil
}
