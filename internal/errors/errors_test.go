package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := NewNetworkError("delivering batch", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Error() != "delivering batch: dial tcp: refused" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTypeStringAndRecoverable(t *testing.T) {
	tests := []struct {
		err         *AppError
		typeString  string
		recoverable bool
	}{
		{NewConfigError("bad url", nil), "Configuration Error", false},
		{NewNetworkError("timeout", nil), "Network Error", true},
		{NewIntegrationError("sprig", nil), "Integration Error", true},
		{NewStorageError("identity", nil), "Storage Error", false},
		{NewUIError("render", nil), "UI Error", false},
		{New(ErrorUnknown, "?"), "Unknown Error", false},
	}

	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			if got := tt.err.GetTypeString(); got != tt.typeString {
				t.Errorf("GetTypeString() = %q, want %q", got, tt.typeString)
			}
			if got := tt.err.IsRecoverable(); got != tt.recoverable {
				t.Errorf("IsRecoverable() = %v, want %v", got, tt.recoverable)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	err := NewConfigError("invalid", nil).WithContext("field", "SleepCount")
	if err.Context["field"] != "SleepCount" {
		t.Errorf("expected context to carry field, got %v", err.Context)
	}
}

func TestTypeOfFollowsChain(t *testing.T) {
	wrapped := fmt.Errorf("starting: %w", NewStorageError("identity", nil))

	if got := TypeOf(wrapped); got != ErrorStorage {
		t.Errorf("TypeOf() = %v, want %v", got, ErrorStorage)
	}
	if got := TypeOf(stderrors.New("plain")); got != ErrorUnknown {
		t.Errorf("TypeOf(plain) = %v, want %v", got, ErrorUnknown)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("queue is full"), "queue is full"},
		{"categorised", NewConfigError("bad url", nil), "Configuration Error: bad url"},
		{"wrapped", fmt.Errorf("run: %w", NewNetworkError("offline", nil)), "Network Error: run: offline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecoverable(t *testing.T) {
	if !Recoverable(fmt.Errorf("x: %w", NewIntegrationError("sprig", nil))) {
		t.Error("expected wrapped integration error to be recoverable")
	}
	if Recoverable(NewConfigError("bad", nil)) || Recoverable(stderrors.New("plain")) {
		t.Error("expected configuration and plain errors to be unrecoverable")
	}
}
