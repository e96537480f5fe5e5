package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateEventCode(t *testing.T) {
	date := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		eventName  string
		wantPrefix string
	}{
		{"plain name", "Wedding", "WED25"},
		{"lowercase name", "birthday", "BIR25"},
		{"name with spaces and digits", "A B 2025 Party", "ABP25"},
		{"short name gets random padding", "Jo", ""},
		{"empty name still yields a code", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := GenerateEventCode(tt.eventName, date)

			if len(code) != EventCodeLength {
				t.Fatalf("code %q has length %d, want %d", code, len(code), EventCodeLength)
			}
			if tt.wantPrefix != "" && !strings.HasPrefix(code, tt.wantPrefix) {
				t.Errorf("code %q missing prefix %q", code, tt.wantPrefix)
			}
		})
	}
}

func TestGenerateEventCodeVaries(t *testing.T) {
	date := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateEventCode("Jo", date)] = true
	}
	if len(seen) < 2 {
		t.Error("expected random padding to produce different codes")
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateOTP()
		if len(otp) != 6 {
			t.Fatalf("OTP %q has length %d, want 6", otp, len(otp))
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("OTP %q contains non-digit %q", otp, r)
			}
		}
	}
}
