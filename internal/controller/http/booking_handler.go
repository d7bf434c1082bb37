package http

import (
	"net/http"
	"strconv"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/internal/usecase"
	"clubhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
	logger         *logger.Logger
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
		logger:         logger,
	}
}

type CreateBookingRequest struct {
	ServiceID      string `json:"service_id" binding:"required"`
	ZoneID         string `json:"zone_id" binding:"required"`
	LocationID     string `json:"location_id"`
	ProfessionalID string `json:"professional_id"`
	StartTime      string `json:"start_time" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required,oneof=prepaid_balance direct_charge"`
	Notes          string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CreateBooking godoc
// @Summary      Create booking
// @Description  Reserve a zone (and optionally a professional) and charge the wallet
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateBookingRequest true "Booking request"
// @Success      201  {object}  entity.Booking
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	memberID := c.GetString("user_id")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be RFC3339"})
		return
	}

	booking, err := h.bookingUseCase.Create(c.Request.Context(), usecase.CreateBookingRequest{
		MemberID:       memberID,
		ServiceID:      req.ServiceID,
		ZoneID:         req.ZoneID,
		LocationID:     req.LocationID,
		ProfessionalID: req.ProfessionalID,
		StartTime:      start.UTC(),
		PaymentMethod:  entity.PaymentMethod(req.PaymentMethod),
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBooking godoc
// @Summary      Get booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Success      200  {object}  entity.Booking
// @Failure      404  {object}  map[string]string
// @Router       /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookings godoc
// @Summary      List bookings
// @Description  List bookings filtered by member, professional, status or day window
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        member_id query string false "Member ID"
// @Param        professional_id query string false "Professional ID"
// @Param        status query string false "Status"
// @Param        from query string false "Window start (RFC3339)"
// @Param        to query string false "Window end (RFC3339)"
// @Success      200  {object}  map[string]interface{}
// @Router       /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := persistent.BookingListFilter{
		MemberID:       c.Query("member_id"),
		ProfessionalID: c.Query("professional_id"),
		ZoneID:         c.Query("zone_id"),
		Status:         entity.BookingStatus(c.Query("status")),
	}

	// Members may only list their own bookings
	if c.GetString("user_role") != "admin" && filter.ProfessionalID == "" {
		filter.MemberID = c.GetString("user_id")
	}

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = t.UTC()
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = t.UTC()
		}
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.bookingUseCase.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancel a confirmed or pending booking, refunding any wallet charge
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body CancelBookingRequest false "Cancellation reason"
// @Success      200  {object}  entity.Booking
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	actor := c.GetString("user_id")
	booking, err := h.bookingUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	// Members may only cancel their own bookings
	if c.GetString("user_role") != "admin" && booking.MemberID != actor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	booking, err = h.bookingUseCase.Cancel(c.Request.Context(), booking.ID, actor, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteBooking godoc
// @Summary      Complete booking
// @Description  Mark a confirmed booking as delivered and accrue the professional's commission
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Success      200  {object}  entity.Booking
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	booking, err := h.bookingUseCase.Complete(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBooking godoc
// @Summary      Confirm pending booking
// @Description  Settle a pending direct-charge booking after external payment clears
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Success      200  {object}  entity.Booking
// @Failure      409  {object}  map[string]string
// @Router       /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.bookingUseCase.ConfirmPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
