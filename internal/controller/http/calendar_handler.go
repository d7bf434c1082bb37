package http

import (
	"net/http"
	"time"

	"clubhub/internal/usecase"
	"clubhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarUseCase usecase.CalendarUseCase
	logger          *logger.Logger
}

func NewCalendarHandler(calendarUseCase usecase.CalendarUseCase, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarUseCase: calendarUseCase,
		logger:          logger,
	}
}

func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC3339"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be RFC3339"})
		return time.Time{}, time.Time{}, false
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return time.Time{}, time.Time{}, false
	}
	return start.UTC(), end.UTC(), true
}

// ZoneAvailability godoc
// @Summary      Check zone availability
// @Description  Whether a zone is free in [start,end), with the conflict reason when not
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Zone ID"
// @Param        start query string true "Window start (RFC3339)"
// @Param        end query string true "Window end (RFC3339)"
// @Success      200  {object}  entity.Availability
// @Router       /availability/zones/{id} [get]
func (h *CalendarHandler) ZoneAvailability(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	availability, err := h.calendarUseCase.IsZoneAvailable(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// ProfessionalAvailability godoc
// @Summary      Check professional availability
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Professional ID"
// @Param        start query string true "Window start (RFC3339)"
// @Param        end query string true "Window end (RFC3339)"
// @Success      200  {object}  entity.Availability
// @Router       /availability/professionals/{id} [get]
func (h *CalendarHandler) ProfessionalAvailability(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	availability, err := h.calendarUseCase.IsProfessionalAvailable(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}
