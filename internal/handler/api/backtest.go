package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	models "SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	"SignalDesk/internal/usecase"
	xhttp "SignalDesk/pkg/http"
	xlogger "SignalDesk/pkg/logger"
)

// BacktestHandler exposes the offline simulation endpoints.
type BacktestHandler struct {
	logger   *xlogger.Logger
	backtest *usecase.BacktestUseCase
}

func NewBacktestHandler(logger *xlogger.Logger, backtest *usecase.BacktestUseCase) *BacktestHandler {
	return &BacktestHandler{logger: logger, backtest: backtest}
}

func (h *BacktestHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/backtest")
	g.POST("", h.Run)
	g.GET("/:runId/trades", h.Trades)
}

// Run executes a backtest and returns the summary with its run ID.
func (h *BacktestHandler) Run(c echo.Context) error {
	req := &models.BacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	summary, err := h.backtest.Run(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("backtest usecase error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		if errors.Is(err, domrepo.ErrUpstream) {
			return xhttp.AppErrorResponse(c, xhttp.UpstreamError(err.Error()))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, summary)
}

// Trades returns the stored ledger rows of a prior run. Optional from/to
// query params (RFC3339 or unix seconds) bound the entry times.
func (h *BacktestHandler) Trades(c echo.Context) error {
	runID := c.Param("runId")
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 1000)
	from := xhttp.ParseTimeDefault(c.QueryParam("from"), time.Time{})
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), time.Time{})

	trades, err := h.backtest.Trades(c.Request().Context(), runID, limit, from, to)
	if err != nil {
		h.logger.Error("backtest trades error",
			xlogger.String("run_id", runID),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, trades, int64(len(trades)))
}
