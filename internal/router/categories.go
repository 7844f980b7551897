package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"game_store/internal/audit"
	"game_store/internal/model"
	"game_store/internal/store"
	"game_store/internal/validation"
)

// assignCategory 按允许清单套用原始属性，清单外的键静默丢弃。
func assignCategory(cat *model.Category, attrs map[string]json.RawMessage) validation.FieldErrors {
	errs := validation.FieldErrors{}
	for field, raw := range attrs {
		var err error
		switch field {
		case "name":
			err = setString(&cat.Name, raw)
		default:
			continue
		}
		if err != nil {
			errs.Add(field, validation.MsgInvalid)
		}
	}
	return errs
}

// listCategories 查询分类列表，支持 search 与 page/length。
func listCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories := []model.Category{}
		err := db.Scopes(
			store.SearchByName(c.Query("search")),
			store.Paginate(queryInt(c, "page"), queryInt(c, "length")),
		).Find(&categories).Error
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// createCategory 新建分类。
func createCategory(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, ok := entityParams(c, "category")
		if !ok {
			return
		}
		var category model.Category
		errs, err := store.Save(db, &category, "name", assignCategory(&category, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "create", "category", category.ID)
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// updateCategory 按提交的部分字段更新已有分类。
func updateCategory(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var category model.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		attrs, ok := entityParams(c, "category")
		if !ok {
			return
		}
		errs, err := store.Save(db, &category, "name", assignCategory(&category, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "update", "category", category.ID)
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// destroyCategory 删除分类并级联清理连接行。
func destroyCategory(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var category model.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		if err := store.DeleteCategory(db, &category); err != nil {
			renderServerError(c, err)
			return
		}
		recordAudit(c, rec, "destroy", "category", category.ID)
		c.Status(http.StatusNoContent)
	}
}
