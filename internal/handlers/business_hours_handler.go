package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/cache"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/validators"
)

type BusinessHoursHandler struct {
	db         *gorm.DB
	availCache *cache.Availability
}

func NewBusinessHoursHandler(db *gorm.DB, availCache *cache.Availability) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db, availCache: availCache}
}

type BusinessHoursUpdateRequest struct {
	WorkStart          string `json:"work_start" binding:"required"`
	WorkEnd            string `json:"work_end" binding:"required"`
	SessionDurationMin int    `json:"session_duration_min" binding:"required,min=1"`
	BreakDurationMin   int    `json:"break_duration_min" binding:"min=0"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	var hours models.BusinessHours
	if err := h.db.First(&hours).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "business_hours_not_found"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validators.IsHourMinute(req.WorkStart) || !validators.IsHourMinute(req.WorkEnd) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_format"})
		return
	}

	start, _ := time.Parse("15:04", req.WorkStart)
	end, _ := time.Parse("15:04", req.WorkEnd)
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "work_end_before_work_start"})
		return
	}

	// com o expediente menor que uma sessão, nenhum horário será
	// gerado em nenhuma data
	if int(end.Sub(start).Minutes()) < req.SessionDurationMin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_longer_than_workday"})
		return
	}

	var hours models.BusinessHours
	if err := h.db.First(&hours).Error; err != nil {
		hours = models.BusinessHours{}
	}

	hours.WorkStart = req.WorkStart
	hours.WorkEnd = req.WorkEnd
	hours.SessionDurationMin = req.SessionDurationMin
	hours.BreakDurationMin = req.BreakDurationMin

	if err := h.db.Save(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_business_hours"})
		return
	}

	// expediente novo muda a grade inteira; derruba o cache dos
	// próximos dias
	h.invalidateUpcoming(c.Request.Context())

	c.JSON(http.StatusOK, hours)
}

func (h *BusinessHoursHandler) invalidateUpcoming(ctx context.Context) {
	practice := practiceOrDefault(h.db)

	// as chaves do cache usam a data no fuso do consultório; o relógio
	// do servidor pode estar em outro dia perto da meia-noite
	now := timezone.NowIn(practice.Timezone)

	for _, date := range upcomingDates(now, practice.MaxDaysAhead) {
		h.availCache.Invalidate(ctx, date)
	}
}

func upcomingDates(now time.Time, maxDaysAhead int) []string {
	dates := make([]string, 0, maxDaysAhead+1)
	for d := 0; d <= maxDaysAhead; d++ {
		dates = append(dates, now.AddDate(0, 0, d).Format("2006-01-02"))
	}
	return dates
}
