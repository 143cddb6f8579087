package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Error is the API error type carried from services up to handlers.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrNotFound            = New("resource not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
	ErrInsufficientPoints  = New("insufficient points", http.StatusUnprocessableEntity)
	InActiveUserError      = errors.New("user inactive")
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("message: %v, status: %v", e.Message, e.Status)
}

// ErrorHandler is invoked by the rate limiter when a client is over its quota.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "Too many requests. Try again in " + time.Until(info.ResetTime).String(),
	})
}

// GetUniqueContraintError maps a postgres unique-violation to a friendly 400.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") {
		switch {
		case strings.Contains(msg, "email"):
			return New("email already exists", http.StatusBadRequest)
		default:
			return New("record already exists", http.StatusBadRequest)
		}
	}
	return ErrInternalServerError
}
