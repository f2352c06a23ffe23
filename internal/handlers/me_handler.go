package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/master-scheduler/internal/usecase/account"
)

type MeHandler struct {
	accounts *ucAccount.Accounts
}

func NewMeHandler(accounts *ucAccount.Accounts) *MeHandler {
	return &MeHandler{accounts: accounts}
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Bio         *string `json:"bio"`
	Timezone    *string `json:"timezone"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.accounts.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"profile": user.Profile,
	})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Invalid profile data.", err.Error())
		return
	}

	p, err := h.accounts.UpdateProfile(c.Request.Context(), middleware.UserID(c), ucAccount.ProfileInput{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Bio:         req.Bio,
		Timezone:    req.Timezone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": p})
}
