package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/models"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListSystemLogs returns paginated system logs with optional filters
func ListSystemLogs(c *gin.Context) {
	p := pageFrom(c, map[string]bool{
		"id": true, "user_id": true, "level": true, "module": true, "created_at": true,
	}, "id")

	query := dbconfig.DB.WithContext(c.Request.Context()).Model(&models.SystemLog{})
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if module := c.Query("module"); module != "" {
		query = query.Where("module = ?", module)
	}
	if uid := c.Query("user_id"); uid != "" {
		if parsed, err := strconv.Atoi(uid); err == nil {
			query = query.Where("user_id = ?", parsed)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var logs []models.SystemLog
	if err := p.apply(query).Find(&logs).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.response(logs, total))
}

// GetSystemLog returns a specific system log by ID
func GetSystemLog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var entry models.SystemLog
	if err := dbconfig.DB.WithContext(c.Request.Context()).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, business.ErrNotFound.Withf("system log %d not found", id))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// AdminGetSettings returns the system settings
func AdminGetSettings(c *gin.Context) {
	settings, err := business.GetSettings(c.Request.Context(), dbconfig.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// AdminUpdateSettings changes maintenance mode or company profit percentage
func AdminUpdateSettings(c *gin.Context) {
	var req business.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	settings, err := business.UpdateSettings(c.Request.Context(), dbconfig.DB, req)
	if err != nil {
		respondError(c, err)
		return
	}
	audit(c, "Updated system settings", models.JSONMap{
		"maintenance_mode":          settings.MaintenanceMode,
		"company_profit_percentage": settings.CompanyProfitPercentage,
	})
	c.JSON(http.StatusOK, settings)
}
