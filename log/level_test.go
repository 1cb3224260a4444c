package log

import "testing"

func TestLevelFromString(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"DEBUG":   DEBUG,
		"info":    INFO,
		"":        INFO,
		"warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range cases {
		if got := LevelFromString(in); got != want {
			t.Errorf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	if DEBUG.String() != "DEBUG" {
		t.Errorf("DEBUG.String() = %q", DEBUG.String())
	}
	if LogLevel(99).String() != "LEVEL(99)" {
		t.Errorf("unknown level String() = %q", LogLevel(99).String())
	}
}
