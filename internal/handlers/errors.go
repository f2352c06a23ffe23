package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/BruksfildServices01/master-scheduler/internal/domain/account"
	bookingdomain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	catalogdomain "github.com/BruksfildServices01/master-scheduler/internal/domain/catalog"
	scheduledomain "github.com/BruksfildServices01/master-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
)

// writeError maps use-case errors to HTTP responses. Unknown errors are
// logged and reported as 500 without details.
func writeError(c *gin.Context, err error) {
	if runErr, ok := bookingdomain.IsInsufficientRun(err); ok {
		httperr.WriteDetails(c, http.StatusUnprocessableEntity,
			"insufficient_run",
			"Not enough consecutive free slots for this service.",
			gin.H{"needed": runErr.Needed, "found": runErr.Found},
		)
		return
	}

	switch {
	case bookingdomain.IsSlotTaken(err):
		httperr.Conflict(c, "slot_taken", "This time was just taken. Please pick another slot.")
		return

	case errors.Is(err, bookingdomain.ErrOwnerMismatch):
		httperr.BadRequest(c, "invalid_request", "Service and slot belong to different masters.")
		return

	case errors.Is(err, bookingdomain.ErrServiceInactive):
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return

	case errors.Is(err, scheduledomain.ErrSlotNotEditable):
		httperr.Conflict(c, "slot_not_editable", "Slot cannot be changed in its current status.")
		return

	case errors.Is(err, accountdomain.ErrEmailTaken),
		errors.Is(err, accountdomain.ErrAccountConflict):
		code, _ := httperr.Code(err)
		httperr.Conflict(c, code, "Account already exists.")
		return

	case errors.Is(err, accountdomain.ErrInvalidCredentials):
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return

	case bookingdomain.IsNotFound(err),
		errors.Is(err, catalogdomain.ErrServiceNotFound),
		errors.Is(err, scheduledomain.ErrSlotNotFound),
		errors.Is(err, accountdomain.ErrUserNotFound):
		code, _ := httperr.Code(err)
		httperr.NotFound(c, code, "Not found.")
		return
	}

	if code, ok := httperr.Code(err); ok {
		httperr.BadRequest(c, code, "Invalid request.")
		return
	}

	log.Printf("[HTTP] %s %s error=%v", c.Request.Method, c.FullPath(), err)
	httperr.Internal(c, "internal_error", "Unexpected error.")
}
