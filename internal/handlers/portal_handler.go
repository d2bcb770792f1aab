package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	ucBooking "github.com/EspacoMenteLeve/psy-scheduler/internal/usecase/booking"
)

// Portal do cliente: sem login — o telefone normalizado identifica o
// cliente, e todas as consultas passam pelo hash.
type PortalHandler struct {
	db       *gorm.DB
	listUC   *ucBooking.ListBookings
	cancelUC *ucBooking.CancelBooking
}

func NewPortalHandler(
	db *gorm.DB,
	listUC *ucBooking.ListBookings,
	cancelUC *ucBooking.CancelBooking,
) *PortalHandler {
	return &PortalHandler{
		db:       db,
		listUC:   listUC,
		cancelUC: cancelUC,
	}
}

type PortalIdentifyRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (h *PortalHandler) MyBookings(c *gin.Context) {
	var req PortalIdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	bookings, err := h.listUC.ByClientPhone(c.Request.Context(), req.Phone)
	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *PortalHandler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req PortalIdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	b, err := h.cancelUC.Execute(
		c.Request.Context(),
		uint(id),
		ucBooking.Actor{PhoneHash: domain.HashPhone(phone)},
	)

	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, b)
}
