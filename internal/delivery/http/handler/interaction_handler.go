package handler

import (
	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/interaction"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InteractionHandler struct {
	interactionUseCase *interaction.InteractionUseCase
	log                *zap.Logger
}

func NewInteractionHandler(interactionUseCase *interaction.InteractionUseCase, log *zap.Logger) *InteractionHandler {
	return &InteractionHandler{interactionUseCase: interactionUseCase, log: log}
}

type InteractionRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Mode     string `json:"mode" validate:"required"`
}

// SendProfileInteraction handles POST /functions/v1/sendProfileInteraction.
func (h *InteractionHandler) SendProfileInteraction(c *gin.Context) {
	var req InteractionRequest
	if !bindAndValidate(c, h.log, &req) {
		return
	}

	result, err := h.interactionUseCase.Record(
		c.Request.Context(),
		req.SourceID, req.TargetID,
		domain.Mode(req.Mode), domain.InteractionType(req.Type),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c, result)
}
