package services

import (
	"delivery-tracking-bot/internal/domain"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want domain.Intent
	}{
		{"hi", domain.IntentMenu},
		{"HELLO there", domain.IntentMenu},
		{"Help", domain.IntentMenu},
		{"1", domain.IntentDriverLocation},
		{"Location please", domain.IntentDriverLocation},
		{"WHERE are you", domain.IntentDriverLocation},
		{"2", domain.IntentEta},
		{"eta?", domain.IntentEta},
		{"When will you ARRIVE", domain.IntentEta},
		{"time", domain.IntentEta},
		{"3", domain.IntentDriverInfo},
		{"driver", domain.IntentDriverInfo},
		{"Contact", domain.IntentDriverInfo},
		{"4", domain.IntentLiveTracking},
		{"", domain.IntentMenu},
		{"5", domain.IntentMenu},
		{"ok thanks", domain.IntentMenu},
		// greeting keywords win over every other rule
		{"hi, where is my driver", domain.IntentMenu},
		// location wins over eta
		{"location eta", domain.IntentDriverLocation},
		// menu numbers only match exactly
		{" 1", domain.IntentMenu},
		{"4 ", domain.IntentMenu},
	}

	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
