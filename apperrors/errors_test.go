package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(KindNotFound, "project not found")
	if KindOf(err) != KindNotFound {
		t.Fatalf("KindOf = %v, want KindNotFound", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatalf("foreign errors must map to KindUnknown")
	}
	if KindOf(nil) != KindUnknown {
		t.Fatalf("nil must map to KindUnknown")
	}
}

func TestKindOfWrappedChain(t *testing.T) {
	inner := New(KindForbidden, "no access")
	outer := fmt.Errorf("handling request: %w", inner)

	if KindOf(outer) != KindForbidden {
		t.Fatalf("KindOf through a wrap chain = %v, want KindForbidden", KindOf(outer))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, "failed to fetch team", cause)

	if err.Error() != "failed to fetch team" {
		t.Fatalf("message = %q, the cause must not leak into it", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped cause lost")
	}
}

func TestIsKind(t *testing.T) {
	err := Newf(KindValidationFailed, "%s is required", "name")
	if !IsKind(err, KindValidationFailed) {
		t.Fatalf("IsKind missed the matching kind")
	}
	if IsKind(err, KindConflict) {
		t.Fatalf("IsKind matched the wrong kind")
	}
	if err.Error() != "name is required" {
		t.Fatalf("Newf message = %q", err.Error())
	}
}

func TestKindString(t *testing.T) {
	if KindInvalidTransition.String() != "invalid transition" {
		t.Fatalf("String = %q", KindInvalidTransition.String())
	}
	if Kind(99).String() != "unknown" {
		t.Fatalf("out-of-range kind = %q, want unknown", Kind(99).String())
	}
}
