package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumMarshalSymbolic(t *testing.T) {
	b, err := json.Marshal(CouponActive)
	require.NoError(t, err)
	assert.Equal(t, `"active"`, string(b))

	b, err = json.Marshal(ProfileClient)
	require.NoError(t, err)
	assert.Equal(t, `"client"`, string(b))

	b, err = json.Marshal(ModePvE)
	require.NoError(t, err)
	assert.Equal(t, `"pve"`, string(b))

	// 未声明的值序列化为 null，不伪造符号名
	b, err = json.Marshal(CouponStatus(99))
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestEnumUnmarshalAcceptsSymbolAndInteger(t *testing.T) {
	var s CouponStatus
	require.NoError(t, json.Unmarshal([]byte(`"inactive"`), &s))
	assert.Equal(t, CouponInactive, s)

	require.NoError(t, json.Unmarshal([]byte(`1`), &s))
	assert.Equal(t, CouponActive, s)

	var p UserProfile
	require.NoError(t, json.Unmarshal([]byte(`"admin"`), &p))
	assert.Equal(t, ProfileAdmin, p)
}

func TestEnumUnmarshalUnknownSymbolIsSentinel(t *testing.T) {
	var s CouponStatus
	require.NoError(t, json.Unmarshal([]byte(`"bogus"`), &s))
	assert.False(t, s.Valid())

	var m GameMode
	require.NoError(t, json.Unmarshal([]byte(`"solo"`), &m))
	assert.False(t, m.Valid())
}

func TestEnumUnmarshalRejectsOtherTypes(t *testing.T) {
	var s CouponStatus
	assert.Error(t, json.Unmarshal([]byte(`{"v":1}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &s))
}

func TestEnumUnmarshalRejectsFractionalNumber(t *testing.T) {
	// 1.9 不能被静默截断成 active
	var s CouponStatus
	assert.Error(t, json.Unmarshal([]byte(`1.9`), &s))

	require.NoError(t, json.Unmarshal([]byte(`2.0`), &s))
	assert.Equal(t, CouponInactive, s)
}
