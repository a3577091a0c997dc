package http

import (
	"net/http"
	"strconv"

	"algotradex/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	{
		backtestGroup.POST("/run", h.runBacktest)
		backtestGroup.GET("/:id", h.getBacktest)
		backtestGroup.GET("/:id/trades", h.getBacktestTrades)
		backtestGroup.GET("", h.listBacktests)
	}
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.BacktestService.Run(ctx, *req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) getBacktest(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid backtest id"})
	}

	result, err := h.service.BacktestService.Get(c.Request().Context(), uint(id))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) getBacktestTrades(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid backtest id"})
	}

	trades, err := h.service.BacktestService.Trades(c.Request().Context(), uint(id))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, trades)
}

func (h *HttpAPIHandler) listBacktests(c echo.Context) error {
	var strategyID, stockID *uint
	if v := c.QueryParam("strategy_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid strategy_id"})
		}
		id := uint(parsed)
		strategyID = &id
	}
	if v := c.QueryParam("stock_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid stock_id"})
		}
		id := uint(parsed)
		stockID = &id
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	results, err := h.service.BacktestService.List(c.Request().Context(), strategyID, stockID, limit)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, results)
}
