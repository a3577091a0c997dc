package http

import (
	"context"
	"errors"
	"net/http"

	"algotradex/internal/engine"
	"algotradex/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api/v1")
	h.SetupStocks(base)
	h.SetupStrategies(base)
	h.SetupBacktest(base)
}

// errorJSON maps domain errors onto HTTP status codes. Engine validation and
// data-sufficiency errors are the caller's fault, missing rows are 404,
// everything else is a 500.
func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidConfig),
		errors.Is(err, engine.ErrInsufficientData),
		errors.Is(err, engine.ErrNonMonotonicSeries):
		status = http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
