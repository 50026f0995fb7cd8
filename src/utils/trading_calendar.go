package utils

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar answers "is this symbol's market open" using scmhub/calendar.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// MarketSession describes the exchange session at a moment in time.
type MarketSession struct {
	MIC        string `json:"mic"`
	TradingDay bool   `json:"trading_day"`
	Open       bool   `json:"open"`
	Fallback   bool   `json:"fallback"`
}

// Yahoo-style symbol suffixes to ISO 10383 MIC codes
var suffixMIC = map[string]string{
	".L": "xlon", ".PA": "xpar", ".DE": "xfra", ".AS": "xams", ".BR": "xbru",
	".MI": "xmil", ".MC": "xmad", ".ST": "xsto", ".CO": "xcse", ".HE": "xhel",
	".VI": "xwbo", ".SW": "xswx", ".TO": "xtse", ".V": "xtsx", ".T": "xtks",
	".HK": "xhkg", ".AX": "xasx", ".KS": "xkrx", ".TW": "xtai", ".SS": "xshg",
	".SZ": "xshe",
}

// -----------------------------------------------------------------------------

// MICForSymbol maps a symbol suffix to its exchange, defaulting to NYSE
func MICForSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if dot := strings.LastIndex(symbol, "."); dot > 0 {
		if mic, ok := suffixMIC[symbol[dot:]]; ok {
			return mic
		}
	}
	return "xnys"
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	mic := MICForSymbol(symbol)

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		mic = "xnys"
		cal = calendar.GetCalendar(mic)
	}

	if cal == nil {
		// Mon-Fri 09:30-16:00 New York
		nyLoc, err := time.LoadLocation("America/New_York")
		if err != nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{MIC: mic, Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{MIC: mic, Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}
		hour, minute := t.Hour(), t.Minute()
		return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
	}

	return tc.Calendar.IsOpen(t)
}

// -----------------------------------------------------------------------------

// Session snapshots the calendar at t
func (tc *TradingCalendar) Session(t time.Time) MarketSession {
	return MarketSession{
		MIC:        tc.MIC,
		TradingDay: tc.IsTradingDay(t),
		Open:       tc.IsOpenOnMinute(t),
		Fallback:   tc.Fallback,
	}
}
