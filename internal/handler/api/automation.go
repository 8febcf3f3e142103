package api

import (
	"context"

	"github.com/labstack/echo/v4"

	models "SignalDesk/internal/domain/models"
	"SignalDesk/internal/usecase"
	xhttp "SignalDesk/pkg/http"
	xlogger "SignalDesk/pkg/logger"
)

// AutomationHandler controls the periodic scan scheduler.
type AutomationHandler struct {
	logger     *xlogger.Logger
	automation *usecase.AutomationUseCase

	// baseCtx outlives individual requests so the loop keeps running
	// after the Start request returns.
	baseCtx context.Context
}

func NewAutomationHandler(logger *xlogger.Logger, automation *usecase.AutomationUseCase, baseCtx context.Context) *AutomationHandler {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &AutomationHandler{logger: logger, automation: automation, baseCtx: baseCtx}
}

func (h *AutomationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/automation")
	g.POST("/start", h.Start)
	g.POST("/stop", h.Stop)
	g.GET("/status", h.Status)
}

func (h *AutomationHandler) Start(c echo.Context) error {
	req := &models.AutomationStartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.automation.Start(h.baseCtx, req.IntervalMinutes); err != nil {
		h.logger.Error("automation start error", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, h.automation.Status())
}

func (h *AutomationHandler) Stop(c echo.Context) error {
	h.automation.Stop()
	return xhttp.SuccessResponse(c, h.automation.Status())
}

func (h *AutomationHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.automation.Status())
}
