package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/httperr"
	"github.com/glencullen/golfpoi/internal/httpresp"
	"github.com/glencullen/golfpoi/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	userID := tokenUserID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Unauthorized.")
		return
	}

	var user models.User
	if err := h.db.First(&user, *userID).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "Unauthorized.")
		return
	}
	if !user.AdminUser {
		httperr.Unauthorized(c, "admin_required", "Admin privilege required.")
		return
	}

	var logs []models.AuditLog
	if err := h.db.Order("id DESC").Limit(200).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Error listing audit logs.")
		return
	}

	httpresp.List(c, logs)
}
