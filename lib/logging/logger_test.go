package logging

import "testing"

func TestParseLogLevelPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on invalid log level")
		}
	}()
	parseLogLevel("bogus")
}

func TestCreateLoggerIsUsable(t *testing.T) {
	SetLevel("debug")
	l := CreateLogger(SubsystemKeyspace)
	if l == nil {
		t.Fatalf("CreateLogger returned nil")
	}
	l.Infow("test message", "key", "value")
}
