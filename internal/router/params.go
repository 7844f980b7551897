package router

import (
	"bytes"
	"encoding/json"
	"time"

	"game_store/internal/model"
)

// 原始属性以 json.RawMessage 形式套用到实体字段上：
// 只有这样才能区分"键不存在"（字段保持原值）与"显式 null"（字段置空）。

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func setString(dst *string, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = ""
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func setFloat(dst *float64, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = 0
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func setTime(dst *time.Time, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = time.Time{}
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func setCouponStatus(dst *model.CouponStatus, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = 0
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func setProfile(dst **model.UserProfile, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = nil
		return nil
	}
	var p model.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*dst = &p
	return nil
}
