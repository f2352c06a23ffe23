package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/master-scheduler/internal/dto"
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/master-scheduler/internal/middleware"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
	ucAccount "github.com/BruksfildServices01/master-scheduler/internal/usecase/account"
	ucSchedule "github.com/BruksfildServices01/master-scheduler/internal/usecase/schedule"
)

type SlotHandler struct {
	accounts *ucAccount.Accounts
	generate *ucSchedule.GenerateSlots
	list     *ucSchedule.ListSlots
	manage   *ucSchedule.ManageSlot
}

func NewSlotHandler(
	accounts *ucAccount.Accounts,
	generate *ucSchedule.GenerateSlots,
	list *ucSchedule.ListSlots,
	manage *ucSchedule.ManageSlot,
) *SlotHandler {
	return &SlotHandler{
		accounts: accounts,
		generate: generate,
		list:     list,
		manage:   manage,
	}
}

type GenerateSlotsRequest struct {
	Date         string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime    string `json:"start_time" binding:"required"` // HH:mm
	EndTime      string `json:"end_time" binding:"required"`   // HH:mm
	SlotDuration int    `json:"slot_duration" binding:"required"`
	BreakStart   string `json:"break_start"` // HH:mm, optional
	BreakEnd     string `json:"break_end"`   // HH:mm, optional
}

// ======================================================
// LIST
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	masterID := middleware.MasterID(c)

	var (
		from, to *time.Time
		profile  *models.MasterProfile
	)

	if c.Query("from") != "" || c.Query("to") != "" {
		user, err := h.accounts.Me(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		profile = user.Profile
	}

	if s := c.Query("from"); s != "" {
		d, err := startOfDay(profile, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD for 'from'.")
			return
		}
		from = &d
	}
	if s := c.Query("to"); s != "" {
		d, err := endOfDay(profile, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD for 'to'.")
			return
		}
		to = &d
	}

	slots, err := h.list.Execute(c.Request.Context(), masterID, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromSlots(slots))
}

// ======================================================
// GENERATE
// ======================================================

func (h *SlotHandler) Generate(c *gin.Context) {
	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Invalid slot data.", err.Error())
		return
	}

	res, err := h.generate.Execute(c.Request.Context(), ucSchedule.GenerateSlotsInput{
		MasterID:    middleware.MasterID(c),
		UserID:      middleware.UserID(c),
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DurationMin: req.SlotDuration,
		BreakStart:  req.BreakStart,
		BreakEnd:    req.BreakEnd,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// DELETE / BLOCK / UNBLOCK
// ======================================================

func (h *SlotHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.manage.Delete(c.Request.Context(), middleware.MasterID(c), middleware.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *SlotHandler) Block(c *gin.Context) {
	h.change(c, h.manage.Block)
}

func (h *SlotHandler) Unblock(c *gin.Context) {
	h.change(c, h.manage.Unblock)
}

func (h *SlotHandler) change(
	c *gin.Context,
	fn func(ctx context.Context, masterID, userID, slotID uint) (*models.Slot, error),
) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	slot, err := fn(c.Request.Context(), middleware.MasterID(c), middleware.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, dto.FromSlot(*slot))
}
