package http

import (
	"time"

	xutil "SignalDesk/pkg/util"
)

// Query-param helpers, re-exported so handlers only import this
// package for their transport needs.

func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

func ParseTimeDefault(s string, def time.Time) time.Time { return xutil.ParseTimeDefault(s, def) }
