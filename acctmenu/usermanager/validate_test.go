package usermanager

import (
	"strings"
	"testing"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"ab", true},
		{"a", true},
		{"_", true},
		{"_svc", true},
		{"deploy-bot_2", true},
		{"a" + strings.Repeat("b", 31), true},
		{"", false},
		{"Alice", false},
		{"1user", false},
		{"-dash", false},
		{"a" + strings.Repeat("b", 32), false},
		{"bob smith", false},
		{"bob.smith", false},
		{"bob$", false},
		{"bob\n", false},
		{"élodie", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidUsername(tt.name); got != tt.want {
				t.Errorf("ValidUsername(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
