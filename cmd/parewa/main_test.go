package main

import "testing"

func TestParseFlags(t *testing.T) {
	fl, err := parseFlags([]string{"--port", "4000", "--api-base-url=http://api.internal:8080"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if fl.port != "4000" || fl.apiBaseURL != "http://api.internal:8080" {
		t.Errorf("unexpected flags %+v", fl)
	}
	if fl.dbFile == "" || fl.logFile == "" {
		t.Error("unset flags should keep their environment defaults")
	}

	if _, err := parseFlags([]string{"extra"}); err == nil {
		t.Error("expected error for positional argument")
	}
	if _, err := parseFlags([]string{"--nope"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
