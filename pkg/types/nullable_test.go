package types

import (
	"encoding/json"
	"testing"
)

func TestNullableInt64Absent(t *testing.T) {
	var payload struct {
		ContainerID NullableInt64 `json:"container_id"`
	}
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.ContainerID.Valid {
		t.Fatalf("absent field must not be valid")
	}
}

func TestNullableInt64ExplicitNull(t *testing.T) {
	var payload struct {
		ContainerID NullableInt64 `json:"container_id"`
	}
	if err := json.Unmarshal([]byte(`{"container_id": null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.ContainerID.Valid {
		t.Fatalf("explicit null must mark the field present")
	}
	if payload.ContainerID.Value != nil {
		t.Fatalf("explicit null must carry nil value")
	}
}

func TestNullableInt64Value(t *testing.T) {
	var payload struct {
		ContainerID NullableInt64 `json:"container_id"`
	}
	if err := json.Unmarshal([]byte(`{"container_id": 42}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.ContainerID.Valid || payload.ContainerID.Value == nil || *payload.ContainerID.Value != 42 {
		t.Fatalf("expected present value 42, got %+v", payload.ContainerID)
	}
}

func TestNullableStringRejectsWrongType(t *testing.T) {
	var payload struct {
		Name NullableString `json:"name"`
	}
	if err := json.Unmarshal([]byte(`{"name": 3}`), &payload); err == nil {
		t.Fatalf("expected type error")
	}
}
