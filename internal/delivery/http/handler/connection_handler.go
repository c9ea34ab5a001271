package handler

import (
	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/usecase/connection"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConnectionHandler struct {
	connectionUseCase *connection.ConnectionUseCase
	log               *zap.Logger
}

func NewConnectionHandler(connectionUseCase *connection.ConnectionUseCase, log *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{connectionUseCase: connectionUseCase, log: log}
}

type ConnectionsRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Mode    string `json:"mode"`
	Minimal *bool  `json:"minimal"`
}

// GetConnections handles POST /functions/v1/getConnections. Minimal
// defaults to true: the conversation list only needs the row fields.
func (h *ConnectionHandler) GetConnections(c *gin.Context) {
	var req ConnectionsRequest
	if !bindAndValidate(c, h.log, &req) {
		return
	}

	minimal := true
	if req.Minimal != nil {
		minimal = *req.Minimal
	}

	entries, err := h.connectionUseCase.List(
		c.Request.Context(), req.UserID, domain.Mode(req.Mode), minimal,
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c, entries)
}
