package services

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validationf("bad input"), http.StatusBadRequest},
		{Conflictf("duplicate '%s'", "A"), http.StatusBadRequest},
		{NotFoundf("missing"), http.StatusNotFound},
		{Forbiddenf("nope"), http.StatusForbidden},
		{Persistence(errors.New("mysql gone")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestPersistenceHidesDetail(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Persistence(cause)

	if err.Error() == cause.Error() {
		t.Fatal("persistence error must not echo the store error to callers")
	}
	if !errors.Is(err, cause) {
		t.Fatal("persistence error should wrap its cause for logging")
	}
}

func TestIsKind(t *testing.T) {
	if !IsKind(Conflictf("x"), KindConflict) {
		t.Fatal("expected conflict kind")
	}
	if IsKind(Validationf("x"), KindConflict) {
		t.Fatal("validation is not conflict")
	}
	if IsKind(errors.New("x"), KindValidation) {
		t.Fatal("plain errors have no kind")
	}
}
