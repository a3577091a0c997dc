package http

import (
	"net/http"
	"strconv"
	"time"

	"algotradex/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	stocksGroup := base.Group("/stocks")
	{
		stocksGroup.GET("", h.listStocks)
		stocksGroup.GET("/:symbol", h.getStock)
		stocksGroup.GET("/:symbol/ohlcv", h.getOHLCV)
		stocksGroup.GET("/:symbol/indicators", h.getIndicators)
		stocksGroup.POST("/sync", h.syncStocks)
	}
}

func (h *HttpAPIHandler) listStocks(c echo.Context) error {
	nifty50Only := c.QueryParam("nifty50") == "true"
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	stocks, err := h.service.StockService.ListStocks(c.Request().Context(), nifty50Only, limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, stocks)
}

func (h *HttpAPIHandler) getStock(c echo.Context) error {
	stock, err := h.service.StockService.GetStock(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, stock)
}

func (h *HttpAPIHandler) getOHLCV(c echo.Context) error {
	symbol := c.Param("symbol")

	var startDate, endDate *time.Time
	if v := c.QueryParam("start_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid start_date, expected YYYY-MM-DD"})
		}
		startDate = &parsed
	}
	if v := c.QueryParam("end_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid end_date, expected YYYY-MM-DD"})
		}
		endDate = &parsed
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	bars, err := h.service.StockService.GetOHLCV(c.Request().Context(), symbol, startDate, endDate, limit)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, bars)
}

func (h *HttpAPIHandler) getIndicators(c echo.Context) error {
	symbol := c.Param("symbol")

	var startDate, endDate *time.Time
	if v := c.QueryParam("start_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid start_date, expected YYYY-MM-DD"})
		}
		startDate = &parsed
	}
	if v := c.QueryParam("end_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid end_date, expected YYYY-MM-DD"})
		}
		endDate = &parsed
	}

	indicators, err := h.service.StockService.GetIndicators(c.Request().Context(), symbol, startDate, endDate)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, indicators)
}

func (h *HttpAPIHandler) syncStocks(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.SyncRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if req.All {
		resp, err := h.service.StockService.SyncUniverse(ctx, req.Years)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	}

	saved, err := h.service.StockService.SyncHistorical(ctx, req.Symbol, req.Years)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, dto.SyncResponse{Symbol: req.Symbol, BarsSaved: saved})
}
