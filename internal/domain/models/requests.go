package models

// Requests for the scan/backtest HTTP endpoints. Defined in domain for
// consistency and reuse.

type ScanRequest struct {
	Symbol string `param:"symbol" query:"symbol" json:"symbol" validate:"required,alphanum|containsany=.-^,max=12"`
}

type TradeSetupRequest struct {
	Symbol  string  `param:"symbol" validate:"required,alphanum|containsany=.-^,max=12"`
	Side    string  `query:"side" default:"BUY" validate:"oneof=BUY SELL"`
	Account float64 `query:"account" default:"100000" validate:"gt=0"`
	RiskPct float64 `query:"riskPct" default:"0.01" validate:"gt=0,lte=0.1"`
}

type BatchScanRequest struct {
	Symbols  []string `json:"symbols" validate:"required,min=1,max=50,dive,required"`
	Interval string   `json:"interval" default:"1d" validate:"oneof=15m 1h 1d"`
}

type BacktestRequest struct {
	Symbol    string  `json:"symbol" validate:"required"`
	Days      int     `json:"days" default:"30" validate:"gte=2,lte=365"`
	Interval  string  `json:"interval" default:"15m" validate:"oneof=15m 1h 1d"`
	MinScore  int     `json:"minScore" default:"60" validate:"gte=1,lte=100"`
	RiskSized bool    `json:"riskSized"`
	Account   float64 `json:"account" default:"100000" validate:"gt=0"`
	RiskPct   float64 `json:"riskPct" default:"0.01" validate:"gt=0,lte=0.1"`
}

type AutomationStartRequest struct {
	IntervalMinutes int `json:"intervalMinutes" default:"15" validate:"gte=1,lte=1440"`
}
