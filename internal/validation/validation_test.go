package validation

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tag struct {
	ID    uint   `gorm:"primarykey"`
	Label string `gorm:"type:varchar(50) collate nocase;uniqueIndex"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tag{}))
	return db
}

func TestRunCollectsAllFailuresInOrder(t *testing.T) {
	errs := Run(
		Rule{Field: "name", Message: MsgBlank, Check: func() bool { return false }},
		Rule{Field: "name", Message: MsgInvalid, Check: func() bool { return false }},
		Rule{Field: "price", Message: MsgGreaterThanZero, Check: func() bool { return false }},
		Rule{Field: "ok", Message: MsgBlank, Check: func() bool { return true }},
	)
	assert.True(t, errs.Any())
	assert.Equal(t, []string{MsgBlank, MsgInvalid}, errs["name"])
	assert.Equal(t, []string{MsgGreaterThanZero}, errs["price"])
	assert.NotContains(t, errs, "ok")
}

func TestRunAllRulesPass(t *testing.T) {
	errs := Run(Rule{Field: "name", Message: MsgBlank, Check: func() bool { return true }})
	assert.False(t, errs.Any())
	assert.Empty(t, errs)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank("   "))
	assert.True(t, Blank("\t\n"))
	assert.False(t, Blank("x"))
	assert.False(t, Blank(" x "))
}

func TestMergeKeepsOrder(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("name", MsgBlank)
	errs.Merge(FieldErrors{"name": {MsgTaken}, "code": {MsgInvalid}})
	assert.Equal(t, []string{MsgBlank, MsgTaken}, errs["name"])
	assert.Equal(t, []string{MsgInvalid}, errs["code"])
}

func TestTakenIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&tag{Label: "Action"}).Error)

	taken, err := Taken(db, &tag{}, "label", "ACTION", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = Taken(db, &tag{}, "label", "adventure", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestTakenExcludesOwnRow(t *testing.T) {
	db := newTestDB(t)
	existing := tag{Label: "Action"}
	require.NoError(t, db.Create(&existing).Error)

	// 更新场景：同一行保留自己的值不算占用
	taken, err := Taken(db, &tag{}, "label", "action", existing.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	other := tag{Label: "Indie"}
	require.NoError(t, db.Create(&other).Error)
	taken, err = Taken(db, &tag{}, "label", "ACTION", other.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}
