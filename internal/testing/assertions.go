package testing

import (
	"strings"
	"testing"

	"github.com/tungetti/clinspect/internal/cl/fake"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/logging"
)

// ============================================================================
// Error Assertions
// ============================================================================

// AssertErrorCode checks if an error has a specific error code.
func AssertErrorCode(t testing.TB, err error, expectedCode errors.Code) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error with code %s, but got nil", expectedCode)
		return
	}

	actualCode := errors.GetCode(err)
	if actualCode != expectedCode {
		t.Errorf("expected error code %s, but got %s (error: %v)", expectedCode, actualCode, err)
	}
}

// AssertErrorContains checks if error message contains a substring.
func AssertErrorContains(t testing.TB, err error, substring string) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error containing %q, but got nil", substring)
		return
	}

	if !strings.Contains(err.Error(), substring) {
		t.Errorf("expected error to contain %q, but got: %v", substring, err)
	}
}

// AssertFatal checks that err ends the run.
func AssertFatal(t testing.TB, err error) {
	t.Helper()

	if !errors.IsFatal(err) {
		t.Errorf("expected a fatal error, got: %v", err)
	}
}

// ============================================================================
// Simulated API Assertions
// ============================================================================

// AssertNoOutstanding checks that every context, program and kernel created
// on the simulated API was released.
func AssertNoOutstanding(t testing.TB, api *fake.API) {
	t.Helper()

	if n := api.Outstanding(); n != 0 {
		t.Errorf("expected all objects released, %d still outstanding", n)
	}
}

// ============================================================================
// Logger Assertions
// ============================================================================

// AssertLogContains checks if the mock logger contains a message.
func AssertLogContains(t testing.TB, logger *MockLogger, substring string) {
	t.Helper()

	if !logger.ContainsMessage(substring) {
		var msgs []string
		for _, m := range logger.Messages() {
			msgs = append(msgs, m.Message)
		}
		t.Errorf("expected log to contain %q, but it doesn't (messages: %v)", substring, msgs)
	}
}

// AssertLogNotContains checks if the mock logger does NOT contain a message.
func AssertLogNotContains(t testing.TB, logger *MockLogger, substring string) {
	t.Helper()

	if logger.ContainsMessage(substring) {
		t.Errorf("expected log to NOT contain %q, but it does", substring)
	}
}

// AssertLogLevel checks if a message was logged at a specific level.
func AssertLogLevel(t testing.TB, logger *MockLogger, level logging.Level, substring string) {
	t.Helper()

	if !logger.ContainsMessageAtLevel(level, substring) {
		t.Errorf("expected log at level %s to contain %q", level, substring)
	}
}
