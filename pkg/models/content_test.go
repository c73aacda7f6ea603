package models

import "testing"

func TestResult(t *testing.T) {
	ok := Success("fine text")
	if ok.Failed() {
		t.Error("Success result reports Failed")
	}
	if got := ok.Display(); got != "fine text" {
		t.Errorf("Display() = %q, want %q", got, "fine text")
	}

	bad := Failure("service is down")
	if !bad.Failed() {
		t.Error("Failure result does not report Failed")
	}
	if got := bad.Display(); got != "Error: service is down" {
		t.Errorf("Display() = %q, want %q", got, "Error: service is down")
	}

	var zero Result
	if zero.Failed() {
		t.Error("zero Result reports Failed")
	}
}
