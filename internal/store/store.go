package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"game_store/internal/model"
	"game_store/internal/validation"
)

// errRejected 用于在校验失败时回滚事务，不向调用方透出。
var errRejected = errors.New("record rejected")

// Record 是可被 Save 持久化的校验实体。
type Record interface {
	Validate(tx *gorm.DB) (validation.FieldErrors, error)
}

// Save 在单个事务内执行"校验 → 写入"。
// base 携带绑定阶段已经发现的字段错误（坏类型的字段值），与模型校验的
// 结果合并后一起返回，单个坏字段不会遮蔽其余字段的违规；任一阶段有错
// 都不落库。写入阶段撞上唯一索引（预检与写入之间的竞态窗口）时，
// 等价转换为 uniqueField 上的唯一性错误。
func Save(db *gorm.DB, rec Record, uniqueField string, base validation.FieldErrors) (validation.FieldErrors, error) {
	var fieldErrs validation.FieldErrors
	err := db.Transaction(func(tx *gorm.DB) error {
		modelErrs, err := rec.Validate(tx)
		if err != nil {
			return err
		}
		errs := validation.FieldErrors{}
		errs.Merge(base)
		errs.Merge(modelErrs)
		if errs.Any() {
			fieldErrs = errs
			return errRejected
		}
		if err := tx.Save(rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) && uniqueField != "" {
				fieldErrs = validation.FieldErrors{}
				fieldErrs.Add(uniqueField, validation.MsgTaken)
				return errRejected
			}
			return err
		}
		return nil
	})
	if err != nil && !errors.Is(err, errRejected) {
		return nil, err
	}
	return fieldErrs, nil
}

// Delete 直接删除一行（无关联守卫的实体）。
func Delete(db *gorm.DB, rec any) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(rec).Error
	})
}

// DeleteCategory 在同一事务内先清理连接行再删除分类。
func DeleteCategory(db *gorm.DB, c *model.Category) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", c.ID).Delete(&model.ProductCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(c).Error
	})
}

// DeleteSystemRequirement 执行 restrict-with-error 删除：
// 依赖行计数在删除事务内完成，存在引用它的 Game 时拒绝删除，
// 错误以关联名 "games" 为键返回。
func DeleteSystemRequirement(db *gorm.DB, sr *model.SystemRequirement) (validation.FieldErrors, error) {
	var fieldErrs validation.FieldErrors
	err := db.Transaction(func(tx *gorm.DB) error {
		var dependents int64
		if err := tx.Model(&model.Game{}).
			Where("system_requirement_id = ?", sr.ID).
			Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			fieldErrs = validation.FieldErrors{}
			fieldErrs.Add("games", "cannot be deleted because dependent games exist")
			return errRejected
		}
		return tx.Delete(sr).Error
	})
	if err != nil && !errors.Is(err, errRejected) {
		return nil, err
	}
	return fieldErrs, nil
}

// Paginate 是列表接口的分页 scope；page/length 非法时退回全量。
func Paginate(page, length int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || length <= 0 {
			return db
		}
		return db.Offset((page - 1) * length).Limit(length)
	}
}

// SearchByName 是大小写不敏感的名称模糊检索 scope。
func SearchByName(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q == "" {
			return db
		}
		return db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
}
