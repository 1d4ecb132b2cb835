package api

import (
	"strings"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/models"

	"github.com/gin-gonic/gin"
)

// PlatformCreateRequest 平台注册请求
type PlatformCreateRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Type            string                 `json:"type" binding:"required"`
	APIEndpoint     string                 `json:"api_endpoint"`
	WebhookEndpoint string                 `json:"webhook_endpoint"`
	Configuration   map[string]interface{} `json:"configuration"`
}

// ListPlatforms 获取平台列表
func (h *Handler) ListPlatforms(c *gin.Context) {
	platforms, err := h.PlatformRepo.ListByType(c.Query("type"), c.Query("only_active") == "true")
	if err != nil {
		respondError(c, response.CodeInternal, "内部错误", err)
		return
	}
	response.Success(c, platforms)
}

// CreatePlatform 注册平台
func (h *Handler) CreatePlatform(c *gin.Context) {
	var req PlatformCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	platformType := strings.TrimSpace(req.Type)
	if platformType != constants.PlatformTypeSource && platformType != constants.PlatformTypeOutput {
		respondError(c, response.CodeBadRequest, "平台类型不合法", nil)
		return
	}

	platform := &models.Platform{
		Name:            strings.TrimSpace(req.Name),
		Type:            platformType,
		APIEndpoint:     strings.TrimSpace(req.APIEndpoint),
		WebhookEndpoint: strings.TrimSpace(req.WebhookEndpoint),
		IsActive:        true,
	}
	if req.Configuration != nil {
		platform.Configuration = models.JSON(req.Configuration)
	}
	if err := h.PlatformRepo.Create(platform); err != nil {
		respondError(c, response.CodeInternal, "内部错误", err)
		return
	}
	response.Success(c, platform)
}
