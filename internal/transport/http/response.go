package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Reon1917/AU-GURU/internal/core"
)

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    400,
		Message: err.Error(),
	})
}

func Error(c *gin.Context, err error) {
	statusCode, code, message := parseError(err)
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func parseError(err error) (statusCode, code int, message string) {
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		return http.StatusNotFound, 404, err.Error()
	default:
		return http.StatusBadGateway, 502, err.Error()
	}
}
