package services

import (
	"delivery-tracking-bot/internal/domain"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classify maps a message onto a menu intent.
//
// Rules are checked in order and the first match wins. Keywords match as
// case-insensitive substrings; the menu numbers must match the raw text exactly.
// Anything else falls back to the menu.
func Classify(text string) domain.Intent {
	// A Caser is stateful, so one is built per call.
	t := cases.Lower(language.Und).String(text)

	switch {
	case containsAny(t, "hi", "hello", "help"):
		return domain.IntentMenu
	case containsAny(t, "location", "where") || text == "1":
		return domain.IntentDriverLocation
	case containsAny(t, "eta", "time", "arrive") || text == "2":
		return domain.IntentEta
	case containsAny(t, "driver", "contact") || text == "3":
		return domain.IntentDriverInfo
	case text == "4":
		return domain.IntentLiveTracking
	default:
		return domain.IntentMenu
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
