package handler

import (
	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	log            *zap.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase, log: log}
}

type ProfileRequest struct {
	UserID   string `json:"userId" validate:"required"`
	SourceID string `json:"sourceId"`
	Mode     string `json:"mode"`
	Minimal  bool   `json:"minimal"`
}

type HousingRequestsRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
}

// GetProfile handles POST /functions/v1/getProfile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	var req ProfileRequest
	if !bindAndValidate(c, h.log, &req) {
		return
	}

	payload, err := h.profileUseCase.Get(
		c.Request.Context(), req.UserID, domain.Mode(req.Mode), req.Minimal,
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c, payload)
}

// GetHousingRequests handles POST /functions/v1/getHousingRequests.
func (h *ProfileHandler) GetHousingRequests(c *gin.Context) {
	var req HousingRequestsRequest
	if !bindAndValidate(c, h.log, &req) {
		return
	}

	requests, err := h.profileUseCase.HousingRequests(c.Request.Context(), req.SourceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c, requests)
}
