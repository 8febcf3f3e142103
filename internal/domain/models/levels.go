package models

// KeyLevels carries the reference prices traders lean on: the prior bar's
// OHLC, standard floor-trader pivots derived from it, and Fibonacci
// retracements of the window's high/low range. Computed from daily history
// the retracements are the 52-week fib levels.
type KeyLevels struct {
	PrevOpen  float64 `json:"prevOpen"`
	PrevHigh  float64 `json:"prevHigh"`
	PrevLow   float64 `json:"prevLow"`
	PrevClose float64 `json:"prevClose"`
	CurrOpen  float64 `json:"currOpen"`

	Pivots PivotLevels `json:"pivots"`
	Fibs   FibLevels   `json:"fibs"`
}

// PivotLevels are standard pivots off the prior bar: P = (H+L+C)/3,
// R1/S1 mirrored through P, R2/S2 offset by the bar's range.
type PivotLevels struct {
	P  float64 `json:"p"`
	R1 float64 `json:"r1"`
	R2 float64 `json:"r2"`
	S1 float64 `json:"s1"`
	S2 float64 `json:"s2"`
}

// FibLevels are retracements measured down from the window high.
type FibLevels struct {
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Fib236 float64 `json:"fib236"`
	Fib382 float64 `json:"fib382"`
	Fib500 float64 `json:"fib500"`
	Fib618 float64 `json:"fib618"`
	Fib786 float64 `json:"fib786"`
}
