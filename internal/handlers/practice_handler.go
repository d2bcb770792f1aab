package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

type PracticeHandler struct {
	db *gorm.DB
}

func NewPracticeHandler(db *gorm.DB) *PracticeHandler {
	return &PracticeHandler{db: db}
}

type PracticeUpdateRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`

	MinAdvanceMinutes      *int `json:"min_advance_minutes"`
	MinCancelNoticeMinutes *int `json:"min_cancel_notice_minutes"`
	MaxDaysAhead           *int `json:"max_days_ahead"`
}

func (h *PracticeHandler) Get(c *gin.Context) {
	var practice models.Practice
	if err := h.db.First(&practice).Error; err != nil {
		httperr.NotFound(c, "practice_not_found", "Consultório não configurado.")
		return
	}

	c.JSON(http.StatusOK, practice)
}

func (h *PracticeHandler) Update(c *gin.Context) {
	var practice models.Practice
	if err := h.db.First(&practice).Error; err != nil {
		httperr.NotFound(c, "practice_not_found", "Consultório não configurado.")
		return
	}

	var req PracticeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != "" {
		practice.Name = req.Name
	}
	if req.Timezone != "" {
		if !timezone.IsValid(req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		practice.Timezone = req.Timezone
	}

	if req.MinAdvanceMinutes != nil && *req.MinAdvanceMinutes >= 0 {
		practice.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.MinCancelNoticeMinutes != nil && *req.MinCancelNoticeMinutes >= 0 {
		practice.MinCancelNoticeMinutes = *req.MinCancelNoticeMinutes
	}
	if req.MaxDaysAhead != nil && *req.MaxDaysAhead > 0 {
		practice.MaxDaysAhead = *req.MaxDaysAhead
	}

	if err := h.db.Save(&practice).Error; err != nil {
		httperr.Internal(c, "failed_to_update_practice", "Erro ao atualizar consultório.")
		return
	}

	c.JSON(http.StatusOK, practice)
}
