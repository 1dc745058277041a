package logging

import "testing"

func TestNewDevelopmentLogger(t *testing.T) {
	logger, err := New(true)
	if err != nil {
		t.Fatalf("New(true) returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("New(true) returned nil logger")
	}
	if ce := logger.Check(logger.Level(), "probe"); ce == nil {
		t.Error("development logger should log at its configured level")
	}
}

func TestNewProductionLogger(t *testing.T) {
	logger, err := New(false)
	if err != nil {
		t.Fatalf("New(false) returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("New(false) returned nil logger")
	}
	if logger.Core().Enabled(0) != true { // InfoLevel
		t.Error("production logger should enable info level")
	}
}
