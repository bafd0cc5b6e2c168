package output

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestGetExitCode(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("docco.json", cause), ExitConfigError},
		{"source", NewSourceError("a.rs", cause), ExitIOError},
		{"output", NewOutputError("README.md", cause), ExitIOError},
		{"wrapped", fmt.Errorf("run: %w", NewSourceError("a.rs", cause)), ExitIOError},
		{"plain", errors.New("unknown flag"), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError_Message(t *testing.T) {
	err := NewSourceError("src/lib.rs", fs.ErrPermission)

	want := "cannot read source src/lib.rs: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("ExitError should unwrap to its cause")
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("generate: %w", NewOutputError("README.md", errors.New("disk full")))
	if !IsKind(err, KindOutputUnwritable) {
		t.Error("expected output unwritable kind")
	}
	if IsKind(err, KindSourceUnreadable) {
		t.Error("unexpected source unreadable kind")
	}
	if IsKind(errors.New("plain"), KindOutputUnwritable) {
		t.Error("plain errors have no kind")
	}
}
