package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("STOCKROOM_TEST_KEY", "value")

	if got := Get("STOCKROOM_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected set value, got %q", got)
	}
	if got := Get("STOCKROOM_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("STOCKROOM_TEST_FLAG", "false")

	if GetBool("STOCKROOM_TEST_FLAG", true) {
		t.Fatalf("expected explicit false to win over fallback")
	}
	if !GetBool("STOCKROOM_TEST_FLAG_MISSING", true) {
		t.Fatalf("expected fallback true when unset")
	}

	t.Setenv("STOCKROOM_TEST_FLAG", "not-a-bool")
	if GetBool("STOCKROOM_TEST_FLAG", true) != true {
		t.Fatalf("expected fallback on unparseable value")
	}
}
