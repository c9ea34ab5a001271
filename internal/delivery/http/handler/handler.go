// Package handler implements the function-style endpoints. Every endpoint
// answers HTTP 200 with a {status, response} envelope; callers inspect the
// status field, not the transport code.
package handler

import (
	"net/http"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Envelope struct {
	Status   string `json:"status"`
	Response any    `json:"response"`
}

var validate = validator.New()

func success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Response: payload})
}

func failure(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Status: "error", Response: message})
}

// respondError maps the error taxonomy into the envelope. Validation text
// passes through verbatim; invariant breaches and storage failures are
// logged and flattened to a generic message so raw internals never leak.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		failure(c, err.Error())
	case domain.IsNotFound(err):
		failure(c, err.Error())
	case domain.IsConflict(err):
		log.Error("invariant breach", zap.String("path", c.FullPath()), zap.Error(err))
		failure(c, "Internal error")
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		failure(c, "Internal error")
	}
}

// bindAndValidate decodes the JSON body and runs struct validation,
// answering synchronously (before any storage call) on bad input.
func bindAndValidate(c *gin.Context, log *zap.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		failure(c, "Invalid request body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			failure(c, requiredMessage(errs[0]))
		} else {
			failure(c, "Invalid request body")
		}
		return false
	}
	return true
}

func requiredMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "SourceID":
		return "Source ID is required"
	case "TargetID":
		return "Target ID is required"
	case "UserID":
		return "User ID is required"
	case "Type":
		return "Type is required"
	case "Mode":
		return "Mode is required"
	default:
		return fe.Field() + " is required"
	}
}
