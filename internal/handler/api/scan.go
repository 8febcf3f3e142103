package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	models "SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	"SignalDesk/internal/repository"
	"SignalDesk/internal/usecase"
	xhttp "SignalDesk/pkg/http"
	xlogger "SignalDesk/pkg/logger"
)

// ScanHandler exposes the live scan endpoints.
type ScanHandler struct {
	logger  *xlogger.Logger
	scanner *usecase.ScannerUseCase
}

func NewScanHandler(logger *xlogger.Logger, scanner *usecase.ScannerUseCase) *ScanHandler {
	return &ScanHandler{logger: logger, scanner: scanner}
}

func (h *ScanHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/scan")
	g.GET("/:symbol", h.Scan)
	g.POST("/batch", h.BatchScan)
	g.GET("/:symbol/latest", h.Latest)
	g.GET("/:symbol/setup", h.TradeSetup)
	e.GET("/api/decisions/:symbol", h.Latest)
}

// Scan runs a fresh multi-timeframe scan for one symbol.
func (h *ScanHandler) Scan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	decision, err := h.scanner.Scan(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("scan usecase error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		if errors.Is(err, domrepo.ErrUpstream) {
			return xhttp.AppErrorResponse(c, xhttp.UpstreamError(err.Error()))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, decision)
}

// BatchScan scans up to 50 symbols with bounded concurrency.
func (h *ScanHandler) BatchScan(c echo.Context) error {
	req := &models.BatchScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	results := h.scanner.BatchScan(c.Request().Context(), req.Symbols)
	return xhttp.SuccessResponse(c, results)
}

// TradeSetup returns the sized entry plan for a symbol: structure/ATR stop,
// R-multiple targets, share count and the Kelly recommendation.
func (h *ScanHandler) TradeSetup(c echo.Context) error {
	req := &models.TradeSetupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	setup, err := h.scanner.TradeSetup(c.Request().Context(), req.Symbol, req.Side, req.Account, req.RiskPct)
	if err != nil {
		h.logger.Error("trade setup error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, setup)
}

// Latest returns the persisted Decision without rescanning.
func (h *ScanHandler) Latest(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	decision, err := h.scanner.Latest(c.Request().Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, repository.ErrDecisionNotFound) {
			return xhttp.NotFoundResponse(c, "no decision for "+req.Symbol)
		}
		h.logger.Error("latest decision error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, decision)
}
