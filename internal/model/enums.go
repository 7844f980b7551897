package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// 枚举列以小整数入库、以符号名参与校验与序列化。
// 未知符号会被解码为越界哨兵值，由校验引擎报 "is not included in the list"，
// 而不是在绑定阶段直接失败。

// CouponStatus 优惠券状态。
type CouponStatus int

const (
	CouponActive   CouponStatus = 1
	CouponInactive CouponStatus = 2
)

var couponStatusNames = map[CouponStatus]string{
	CouponActive:   "active",
	CouponInactive: "inactive",
}

// Valid 判断是否为已声明的状态值。
func (s CouponStatus) Valid() bool { _, ok := couponStatusNames[s]; return ok }

func (s CouponStatus) String() string { return couponStatusNames[s] }

func (s CouponStatus) MarshalJSON() ([]byte, error) { return marshalEnum(couponStatusNames[s]) }

func (s *CouponStatus) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, couponStatusNames)
	if err != nil {
		return err
	}
	*s = CouponStatus(v)
	return nil
}

// UserProfile 用户角色。admin 的枚举值为 0，模型里用指针区分"未赋值"。
type UserProfile int

const (
	ProfileAdmin  UserProfile = 0
	ProfileClient UserProfile = 1
)

var userProfileNames = map[UserProfile]string{
	ProfileAdmin:  "admin",
	ProfileClient: "client",
}

func (p UserProfile) Valid() bool { _, ok := userProfileNames[p]; return ok }

func (p UserProfile) String() string { return userProfileNames[p] }

func (p UserProfile) MarshalJSON() ([]byte, error) { return marshalEnum(userProfileNames[p]) }

func (p *UserProfile) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, userProfileNames)
	if err != nil {
		return err
	}
	*p = UserProfile(v)
	return nil
}

// GameMode 游戏对战模式。
type GameMode int

const (
	ModePvP  GameMode = 1
	ModePvE  GameMode = 2
	ModeBoth GameMode = 3
)

var gameModeNames = map[GameMode]string{
	ModePvP:  "pvp",
	ModePvE:  "pve",
	ModeBoth: "both",
}

func (m GameMode) Valid() bool { _, ok := gameModeNames[m]; return ok }

func (m GameMode) String() string { return gameModeNames[m] }

func (m GameMode) MarshalJSON() ([]byte, error) { return marshalEnum(gameModeNames[m]) }

func (m *GameMode) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, gameModeNames)
	if err != nil {
		return err
	}
	*m = GameMode(v)
	return nil
}

func marshalEnum(name string) ([]byte, error) {
	if name == "" {
		return []byte("null"), nil
	}
	return json.Marshal(name)
}

// unmarshalEnum 同时接受符号名与整数编码；未知符号返回 -1 哨兵。
func unmarshalEnum[T ~int](b []byte, names map[T]string) (int, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case nil:
		return 0, nil
	case string:
		for code, name := range names {
			if name == val {
				return int(code), nil
			}
		}
		return -1, nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("enum value must be an integer, got %v", val)
		}
		return int(val), nil
	default:
		return 0, fmt.Errorf("enum value must be a string or integer, got %T", v)
	}
}
