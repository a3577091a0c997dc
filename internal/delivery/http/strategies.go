package http

import (
	"net/http"
	"strconv"

	"algotradex/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStrategies(base *echo.Group) {
	strategiesGroup := base.Group("/strategies")
	{
		strategiesGroup.GET("", h.listStrategies)
		strategiesGroup.GET("/templates", h.strategyTemplates)
		strategiesGroup.GET("/:id", h.getStrategy)
		strategiesGroup.POST("", h.createStrategy)
		strategiesGroup.PUT("/:id", h.updateStrategy)
		strategiesGroup.DELETE("/:id", h.deleteStrategy)
	}
}

func (h *HttpAPIHandler) listStrategies(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	strategies, err := h.service.StrategyService.List(c.Request().Context(), activeOnly, limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, strategies)
}

func (h *HttpAPIHandler) strategyTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.StrategyService.Templates())
}

func (h *HttpAPIHandler) getStrategy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid strategy id"})
	}

	strategy, err := h.service.StrategyService.Get(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, strategy)
}

func (h *HttpAPIHandler) createStrategy(c echo.Context) error {
	req := new(dto.CreateStrategyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	strategy, err := h.service.StrategyService.Create(c.Request().Context(), *req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, strategy)
}

func (h *HttpAPIHandler) updateStrategy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid strategy id"})
	}

	req := new(dto.UpdateStrategyRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	strategy, err := h.service.StrategyService.Update(c.Request().Context(), id, *req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, strategy)
}

func (h *HttpAPIHandler) deleteStrategy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid strategy id"})
	}

	if err := h.service.StrategyService.Delete(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
