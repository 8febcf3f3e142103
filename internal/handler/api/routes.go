package api

import (
	"github.com/labstack/echo/v4"
)

// Router bundles every API handler behind a single RegisterRoutes so the
// HTTP server only needs one registration point.
type Router struct {
	scan       *ScanHandler
	backtest   *BacktestHandler
	automation *AutomationHandler
}

func NewRouter(scan *ScanHandler, backtest *BacktestHandler, automation *AutomationHandler) *Router {
	return &Router{
		scan:       scan,
		backtest:   backtest,
		automation: automation,
	}
}

// RegisterRoutes mounts all handler groups on the Echo instance.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	if r.scan != nil {
		r.scan.RegisterRoutes(e)
	}
	if r.backtest != nil {
		r.backtest.RegisterRoutes(e)
	}
	if r.automation != nil {
		r.automation.RegisterRoutes(e)
	}
}
