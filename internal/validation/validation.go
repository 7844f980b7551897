package validation

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// 校验消息固定为英文文案，保证 errors.fields 输出稳定可断言。
const (
	MsgBlank           = "can't be blank"
	MsgTaken           = "has already been taken"
	MsgGreaterThanZero = "must be greater than 0"
	MsgNotIncluded     = "is not included in the list"
	MsgFutureDate      = "must be in the future"
	MsgInvalid         = "is invalid"
	MsgTooShort        = "is too short (minimum is 6 characters)"
	MsgConfirmation    = "doesn't match password"
)

// FieldErrors 是字段名 → 违规消息列表（保持追加顺序）。
type FieldErrors map[string][]string

// Add 追加一条字段错误。
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any 判断是否存在至少一条错误。
func (e FieldErrors) Any() bool { return len(e) > 0 }

// Merge 把 other 的全部错误并入 e，字段内保持先后顺序。
func (e FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Rule 是一条声明式校验规则：Check 返回 true 表示通过。
type Rule struct {
	Field   string
	Message string
	Check   func() bool
}

// Run 按声明顺序完整执行全部规则（不短路），收集所有失败项。
func Run(rules ...Rule) FieldErrors {
	errs := FieldErrors{}
	for _, r := range rules {
		if !r.Check() {
			errs.Add(r.Field, r.Message)
		}
	}
	return errs
}

// Blank 判定字符串是否为空白（presence 规则的"缺失"定义）。
func Blank(s string) bool { return strings.TrimSpace(s) == "" }

// Taken 做大小写不敏感的唯一性预检：同表内是否已有其它行占用该值。
// excludeID > 0 时排除记录自身（更新场景）。
// 该预检与实际写入之间的竞态由 store 层的唯一索引兜底。
func Taken(tx *gorm.DB, model any, column, value string, excludeID uint) (bool, error) {
	q := tx.Model(model).Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", column), value)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
