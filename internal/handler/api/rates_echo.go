package api

import (
	"errors"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/usecase"
	xhttp "FXPulse/pkg/http"
	xlogger "FXPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RatesEchoHandler exposes the rate, forecast, conversion and margin
// entry points the presentation layer drives.
type RatesEchoHandler struct {
	logger *xlogger.Logger
	svc    *usecase.RateService
}

func NewRatesEchoHandler(logger *xlogger.Logger, svc *usecase.RateService) *RatesEchoHandler {
	return &RatesEchoHandler{logger: logger, svc: svc}
}

func (h *RatesEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/rates", h.Rates)
	g.GET("/rates/history", h.History)
	g.GET("/rates/forecast", h.Forecast)
	g.POST("/convert", h.Convert)
	g.POST("/margin", h.Margin)
	g.POST("/refresh", h.Refresh)
}

func (h *RatesEchoHandler) Rates(c echo.Context) error {
	snapshots, err := h.svc.Snapshot(c.Request().Context())
	if err != nil {
		h.logger.Error("snapshot error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	return xhttp.SuccessResponse(c, snapshots)
}

func (h *RatesEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	currency, err := models.ParseCurrency(req.Code)
	if err != nil {
		return xhttp.AppErrorResponse(c, domainError(err))
	}

	series, err := h.svc.History(c.Request().Context(), currency, req.Refresh)
	if err != nil {
		h.logger.Error("history error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	if len(series) > req.Days {
		series = series[len(series)-req.Days:]
	}
	return xhttp.SuccessResponse(c, models.HistoryResponse{
		Currency: currency,
		Base:     models.BaseCurrency,
		Quotes:   series,
	})
}

func (h *RatesEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	currency, err := models.ParseCurrency(req.Code)
	if err != nil {
		return xhttp.AppErrorResponse(c, domainError(err))
	}

	points, err := h.svc.ForecastSeries(c.Request().Context(), currency, req.Days, req.Horizon, req.Refresh)
	if err != nil {
		h.logger.Error("forecast error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	return xhttp.SuccessResponse(c, models.ForecastResponse{
		Currency: currency,
		Base:     models.BaseCurrency,
		Horizon:  req.Horizon,
		Points:   points,
	})
}

func (h *RatesEchoHandler) Convert(c echo.Context) error {
	req := &models.ConvertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, err := models.ParseCurrency(req.From)
	if err != nil {
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	to, err := models.ParseCurrency(req.To)
	if err != nil {
		return xhttp.AppErrorResponse(c, domainError(err))
	}

	result, err := h.svc.Convert(req.Amount, from, to)
	if err != nil {
		h.logger.Error("convert error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *RatesEchoHandler) Margin(c echo.Context) error {
	req := &models.MarginRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.svc.Margin(*req)
	if err != nil {
		h.logger.Error("margin error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *RatesEchoHandler) Refresh(c echo.Context) error {
	req := &models.RefreshRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result := h.svc.RefreshAll(c.Request().Context(), req.Force)
	return xhttp.SuccessResponse(c, result)
}

// domainError maps domain sentinels onto HTTP application errors.
func domainError(err error) error {
	var fe *models.FetchError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrNotFound):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrMissingRate):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.As(err, &fe):
		return xhttp.BadGatewayError(err.Error()).WithError(err)
	default:
		return err
	}
}
