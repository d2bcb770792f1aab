package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/middleware"
	ucBooking "github.com/EspacoMenteLeve/psy-scheduler/internal/usecase/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/validators"
)

// ======================================================
// HANDLER (console do admin)
// ======================================================

type BookingHandler struct {
	db         *gorm.DB
	createUC   *ucBooking.CreateBooking
	cancelUC   *ucBooking.CancelBooking
	markPaidUC *ucBooking.MarkPaid
	completeUC *ucBooking.CompleteBooking
	listUC     *ucBooking.ListBookings
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	markPaidUC *ucBooking.MarkPaid,
	completeUC *ucBooking.CompleteBooking,
	listUC *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		db:         db,
		createUC:   createUC,
		cancelUC:   cancelUC,
		markPaidUC: markPaidUC,
		completeUC: completeUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminCreateBookingRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ClientTelegram string `json:"client_telegram"`
	ServiceID      *uint  `json:"service_id"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Notes          string `json:"notes"`
}

// ======================================================
// CREATE (agendamento direto → confirmed)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AdminCreateBookingRequest
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
			InitialStatus:  domain.StatusConfirmed,
			ActorUserID:    &userID,
		},
	)

	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	b, err := h.cancelUC.Execute(
		c.Request.Context(),
		uint(id),
		ucBooking.Actor{Admin: true, UserID: &userID},
	)

	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) MarkPaid(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	b, err := h.markPaidUC.Execute(c.Request.Context(), uint(id), &userID)
	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), uint(id), &userID)
	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// LISTS
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if !validators.IsISODate(dateStr) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	bookings, err := h.listUC.ByDate(c.Request.Context(), dateStr, c.Query("status"))
	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     dateStr,
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	bookings, err := h.listUC.ByMonth(c.Request.Context(), year, month)
	if err != nil {
		mapBookingErrors(c, err, practiceOrDefault(h.db))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
		"total":    len(bookings),
	})
}
