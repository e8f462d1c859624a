package main

import "testing"

func TestEnvOr(t *testing.T) {
	t.Setenv("HOTEL_OPTIMIZER_TEST_KEY", "from-env")

	tests := []struct {
		name     string
		key      string
		def      string
		expected string
	}{
		{"set variable wins", "HOTEL_OPTIMIZER_TEST_KEY", "fallback", "from-env"},
		{"unset variable falls back", "HOTEL_OPTIMIZER_TEST_UNSET", "fallback", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := envOr(tt.key, tt.def); got != tt.expected {
				t.Errorf("envOr(%q, %q) = %q, want %q", tt.key, tt.def, got, tt.expected)
			}
		})
	}
}
