package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	ucBooking "github.com/EspacoMenteLeve/psy-scheduler/internal/usecase/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db           *gorm.DB
	availability *ucBooking.GetAvailability
	createUC     *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		createUC:     createUC,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCreateBookingRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ClientTelegram string `json:"client_telegram"`
	ServiceID      *uint  `json:"service_id"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
	ChatID         int64  `json:"chat_id"`
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = true")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")

	if !validators.IsISODate(dateStr) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), dateStr)
	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE BOOKING (autoatendimento → pending_payment)
// ======================================================

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			ClientTelegram: req.ClientTelegram,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
			ChatID:         req.ChatID,
			InitialStatus:  domain.StatusPendingPayment,
		},
	)

	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusCreated, b)
}
