package handler

import (
	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/discovery"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DiscoveryHandler struct {
	discoveryUseCase *discovery.DiscoveryUseCase
	log              *zap.Logger
}

func NewDiscoveryHandler(discoveryUseCase *discovery.DiscoveryUseCase, log *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryUseCase: discoveryUseCase, log: log}
}

// DiscoveryRequest is the getDiscoveryProfiles body. Type carries the
// discovery mode; Filters is the optional filter_key -> value mapping.
type DiscoveryRequest struct {
	SourceID string         `json:"sourceId" validate:"required"`
	Type     string         `json:"type" validate:"required"`
	Filters  map[string]any `json:"filters"`
}

// GetDiscoveryProfiles handles POST /functions/v1/getDiscoveryProfiles.
func (h *DiscoveryHandler) GetDiscoveryProfiles(c *gin.Context) {
	var req DiscoveryRequest
	if !bindAndValidate(c, h.log, &req) {
		return
	}

	profiles, err := h.discoveryUseCase.GetCandidates(
		c.Request.Context(), req.SourceID, domain.Mode(req.Type), req.Filters,
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c, profiles)
}
