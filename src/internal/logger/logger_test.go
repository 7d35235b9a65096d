package logger

import "testing"

func TestSanitizePayloadMasksCredentials(t *testing.T) {
	payload := map[string]any{
		"username": "cliente_test",
		"password": "cliente123",
		"nested": map[string]any{
			"accessToken": "eyJhbGciOi",
		},
	}

	out, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", SanitizePayload(payload))
	}
	if out["password"] != "******" {
		t.Fatalf("expected password masked, got %v", out["password"])
	}
	if out["username"] != "cliente_test" {
		t.Fatalf("expected username untouched, got %v", out["username"])
	}
	nested := out["nested"].(map[string]any)
	if nested["accessToken"] != "******" {
		t.Fatalf("expected accessToken masked, got %v", nested["accessToken"])
	}
}

func TestMergeDoesNotMutateBase(t *testing.T) {
	base := Fields{"path": "/accounts"}
	merged := Merge(base, Fields{"status": 200})

	if len(base) != 1 {
		t.Fatalf("expected base untouched, got %v", base)
	}
	if merged["path"] != "/accounts" || merged["status"] != 200 {
		t.Fatalf("unexpected merged fields %v", merged)
	}
}
