package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/master-scheduler/internal/dto"
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
	"github.com/BruksfildServices01/master-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/master-scheduler/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/master-scheduler/internal/usecase/catalog"
	"github.com/BruksfildServices01/master-scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	directory    *ucBooking.ListMasters
	masters      *ucBooking.GetMaster
	catalog      *ucCatalog.Catalog
	availability *ucBooking.GetAvailability
	create       *ucBooking.CreateBooking
	get          *ucBooking.GetBooking
	cancel       *ucBooking.CancelBooking

	window time.Duration
}

func NewPublicHandler(
	directory *ucBooking.ListMasters,
	masters *ucBooking.GetMaster,
	catalog *ucCatalog.Catalog,
	availability *ucBooking.GetAvailability,
	create *ucBooking.CreateBooking,
	get *ucBooking.GetBooking,
	cancel *ucBooking.CancelBooking,
	window time.Duration,
) *PublicHandler {
	return &PublicHandler{
		directory:    directory,
		masters:      masters,
		catalog:      catalog,
		availability: availability,
		create:       create,
		get:          get,
		cancel:       cancel,
		window:       window,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	SlotID      uint   `json:"slot_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required,max=100"`
	ClientPhone string `json:"client_phone" binding:"required,max=20"`
	Notes       string `json:"notes" binding:"max=1000"`
}

func publicProfiles(profiles []models.MasterProfile) []gin.H {
	out := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		out = append(out, publicProfile(&profiles[i]))
	}
	return out
}

func publicProfile(p *models.MasterProfile) gin.H {
	return gin.H{
		"display_name": p.DisplayName,
		"slug":         p.Slug,
		"phone":        p.Phone,
		"bio":          p.Bio,
		"timezone":     timezone.Location(p.Timezone).String(),
	}
}

// profile resolves :slug or writes the error response.
func (h *PublicHandler) profile(c *gin.Context) (*models.MasterProfile, bool) {
	p, err := h.masters.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return p, true
}

////////////////////////////////////////////////////////
// MASTERS CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListMasters(c *gin.Context) {
	catalog, err := h.directory.Execute(c.Request.Context(), timezone.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"masters":     publicProfiles(catalog.Available),
		"all_masters": publicProfiles(catalog.All),
	})
}

////////////////////////////////////////////////////////
// MASTER CARD / SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) GetMaster(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, publicProfile(p))
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}

	services, err := h.catalog.List(c.Request.Context(), p.UserID, true)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"master":   publicProfile(p),
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}

	serviceID, ok := parseIDQuery(c, "service")
	if !ok {
		return
	}

	now := timezone.NowIn(p.Timezone)

	from, to, ok := dateRange(c, p, now, h.window)
	if !ok {
		return
	}

	// without an explicit "from", slots already started today are hidden
	var notBefore time.Time
	if c.Query("from") == "" {
		notBefore = now
	}

	res, err := h.availability.Execute(c.Request.Context(), ucBooking.GetAvailabilityInput{
		MasterID:  p.UserID,
		ServiceID: serviceID,
		From:      from,
		To:        to,
		NotBefore: notBefore,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"master":       publicProfile(p),
		"service":      res.Service,
		"slots_needed": res.SlotsNeeded,
		"from":         from,
		"to":           to,
		"slots":        dto.FromSlots(res.Slots),
	})
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Invalid booking data.", err.Error())
		return
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		httperr.BadRequest(c, "invalid_client_name", "Client name is required.")
		return
	}
	if !validators.IsPhoneValid(req.ClientPhone) {
		httperr.BadRequest(c, "invalid_phone", "Client phone is not valid.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		MasterID:    p.UserID,
		ServiceID:   req.ServiceID,
		SlotID:      req.SlotID,
		ClientName:  name,
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBooking(b))
}

func (h *PublicHandler) GetBooking(c *gin.Context) {
	ref, ok := bookingReference(c)
	if !ok {
		return
	}

	b, err := h.get.ByReference(c.Request.Context(), ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBooking(b))
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	ref, ok := bookingReference(c)
	if !ok {
		return
	}

	b, err := h.cancel.ExecuteByReference(c.Request.Context(), ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBooking(b))
}

// bookingReference rejects malformed references as unknown bookings.
func bookingReference(c *gin.Context) (string, bool) {
	ref, err := uuid.Parse(c.Param("reference"))
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Not found.")
		return "", false
	}
	return ref.String(), true
}
