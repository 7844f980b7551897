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

// assignSystemRequirement 按允许清单套用原始属性，清单外的键静默丢弃。
func assignSystemRequirement(sr *model.SystemRequirement, attrs map[string]json.RawMessage) validation.FieldErrors {
	errs := validation.FieldErrors{}
	for field, raw := range attrs {
		var err error
		switch field {
		case "name":
			err = setString(&sr.Name, raw)
		case "operational_system":
			err = setString(&sr.OperationalSystem, raw)
		case "storage":
			err = setString(&sr.Storage, raw)
		case "processor":
			err = setString(&sr.Processor, raw)
		case "memory":
			err = setString(&sr.Memory, raw)
		case "video_board":
			err = setString(&sr.VideoBoard, raw)
		default:
			continue
		}
		if err != nil {
			errs.Add(field, validation.MsgInvalid)
		}
	}
	return errs
}

// listSystemRequirements 查询配置要求列表，支持 search 与 page/length。
func listSystemRequirements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requirements := []model.SystemRequirement{}
		err := db.Scopes(
			store.SearchByName(c.Query("search")),
			store.Paginate(queryInt(c, "page"), queryInt(c, "length")),
		).Find(&requirements).Error
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"system_requirements": requirements})
	}
}

// createSystemRequirement 新建配置要求。
func createSystemRequirement(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, ok := entityParams(c, "system_requirement")
		if !ok {
			return
		}
		var requirement model.SystemRequirement
		errs, err := store.Save(db, &requirement, "name", assignSystemRequirement(&requirement, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "create", "system_requirement", requirement.ID)
		c.JSON(http.StatusOK, gin.H{"system_requirement": requirement})
	}
}

// updateSystemRequirement 按提交的部分字段更新已有配置要求。
func updateSystemRequirement(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var requirement model.SystemRequirement
		if err := db.First(&requirement, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		attrs, ok := entityParams(c, "system_requirement")
		if !ok {
			return
		}
		errs, err := store.Save(db, &requirement, "name", assignSystemRequirement(&requirement, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "update", "system_requirement", requirement.ID)
		c.JSON(http.StatusOK, gin.H{"system_requirement": requirement})
	}
}

// destroySystemRequirement 删除配置要求。
// 仍被 Game 引用时拒绝删除，按关联名返回 422 错误。
func destroySystemRequirement(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var requirement model.SystemRequirement
		if err := db.First(&requirement, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		errs, err := store.DeleteSystemRequirement(db, &requirement)
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "destroy", "system_requirement", requirement.ID)
		c.Status(http.StatusNoContent)
	}
}
