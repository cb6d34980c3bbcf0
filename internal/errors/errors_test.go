package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(InputAbsent, "no stack trace selected", nil)
	if !strings.Contains(err.Error(), "INPUT_ABSENT") {
		t.Errorf("Error() = %q, want code included", err.Error())
	}
	if !strings.Contains(err.Error(), "no stack trace selected") {
		t.Errorf("Error() = %q, want message included", err.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := New(InternalError, "analysis failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is must find the cause")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestWithDetails(t *testing.T) {
	err := New(RunNotFound, "unknown run", nil).WithDetails(map[string]string{"id": "abc"})
	details, ok := err.Details.(map[string]string)
	if !ok || details["id"] != "abc" {
		t.Errorf("details = %v", err.Details)
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(Unauthorized, "bad token", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Error("Unauthorized must carry a suggested fix")
	}

	if fixes := GetSuggestedFixes(InputAbsent); fixes != nil {
		t.Errorf("InputAbsent should have no fixes, got %v", fixes)
	}
}

func TestFixCommandsNameRealSubcommands(t *testing.T) {
	known := map[string]bool{
		"analyze": true, "features": true, "classify": true,
		"arch": true, "violations": true, "quality": true,
		"dataset": true, "collect": true, "runs": true,
		"serve": true, "token": true, "init": true,
	}

	for code, fixes := range ErrorActions {
		for _, fix := range fixes {
			if fix.Type != RunCommand {
				continue
			}
			fields := strings.Fields(fix.Command)
			for i, f := range fields {
				if f != "stacklens" {
					continue
				}
				if i+1 >= len(fields) || !known[fields[i+1]] {
					t.Errorf("%s fix %q does not name a real subcommand", code, fix.Command)
				}
			}
		}
	}
}
