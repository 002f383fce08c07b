package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"loadsmart_billing/internal/dao/mongodb"
	"loadsmart_billing/internal/logic"
)

// writeSuccess writes the standard success envelope.
func writeSuccess(c *gin.Context, httpCode int, data interface{}) {
	c.JSON(httpCode, gin.H{
		"status": "success",
		"code":   httpCode,
		"data":   data,
	})
}

// writeError writes the standard error envelope.
func writeError(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, gin.H{
		"status":  "error",
		"code":    httpCode,
		"message": message,
	})
}

// writeLogicError maps a business error to its HTTP status. Transition
// conflicts carry the current state in the error text so clients can react
// without a second read.
func writeLogicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mongodb.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrInvalidTransition),
		errors.Is(err, logic.ErrCounterAlreadyPending),
		errors.Is(err, logic.ErrCounterAlreadyResolved),
		errors.Is(err, mongodb.ErrDuplicateInvoiceNum):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, logic.ErrNotAcknowledged):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	// The confirmation sentinel is a specialization of ErrUnauthorized, so
	// it has to be matched first.
	case errors.Is(err, logic.ErrPaymentNotConfirmed):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrUnauthorized):
		writeError(c, http.StatusForbidden, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal server error")
	}
}
