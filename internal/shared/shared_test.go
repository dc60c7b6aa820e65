package shared

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Error("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(a) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(a))
	}
	if a == b {
		t.Error("expected unique state tokens")
	}
}

func TestParseBoolArg(t *testing.T) {
	t.Run("truthy values", func(t *testing.T) {
		for _, arg := range []string{"true", "TRUE", "on", "yes", "1", " true "} {
			value, err := ParseBoolArg(arg)
			if err != nil {
				t.Errorf("expected no error for %q, got %v", arg, err)
			}
			if !value {
				t.Errorf("expected true for %q", arg)
			}
		}
	})

	t.Run("falsy values", func(t *testing.T) {
		for _, arg := range []string{"false", "OFF", "no", "0"} {
			value, err := ParseBoolArg(arg)
			if err != nil {
				t.Errorf("expected no error for %q, got %v", arg, err)
			}
			if value {
				t.Errorf("expected false for %q", arg)
			}
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, arg := range []string{"", "maybe", "2", "enable"} {
			if _, err := ParseBoolArg(arg); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument for %q, got %v", arg, err)
			}
		}
	})
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(nil)
	if logger == nil {
		t.Fatal("expected a logger")
	}

	SetLogLevel(logger, log.DebugLevel)
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}
}

func TestWithLogger(t *testing.T) {
	logger := NewLogger(nil)
	child := WithLogger(logger, "component", "test")
	if child == nil {
		t.Fatal("expected a child logger")
	}
}
