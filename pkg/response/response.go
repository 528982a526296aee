package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

// Envelope represents the common response contract. Collections are returned
// flat; there is no pagination block.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Msg   string           `json:"msg,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

// Created responds with HTTP 201 Created and a human-readable message.
func Created(c *gin.Context, msg string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, Envelope{Data: data, Msg: msg})
}

// OK responds with HTTP 200 and a human-readable message.
func OK(c *gin.Context, msg string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, Envelope{Data: data, Msg: msg})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
