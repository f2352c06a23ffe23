package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/master-scheduler/internal/dto"
	"github.com/BruksfildServices01/master-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/master-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/master-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	list   *ucBooking.ListBookings
	get    *ucBooking.GetBooking
	cancel *ucBooking.CancelBooking
}

func NewBookingHandler(
	list *ucBooking.ListBookings,
	get *ucBooking.GetBooking,
	cancel *ucBooking.CancelBooking,
) *BookingHandler {
	return &BookingHandler{
		list:   list,
		get:    get,
		cancel: cancel,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	masterID := middleware.MasterID(c)

	bookings, err := h.list.Execute(c.Request.Context(), masterID, c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookingList(bookings))
}

// ======================================================
// GET
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	masterID := middleware.MasterID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), masterID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b))
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	masterID := middleware.MasterID(c)
	userID := middleware.UserID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), masterID, userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBooking(b))
}
