package parse

import (
	"reflect"
	"testing"
)

func TestKeyValues(t *testing.T) {
	tests := []struct {
		line string
		want []KV
	}{
		{`time=2025-01-01T12:00:00Z level=warn msg="slow request" lat_ms=512`, []KV{
			{"time", "2025-01-01T12:00:00Z"}, {"level", "warn"}, {"msg", "slow request"}, {"lat_ms", "512"},
		}},
		{`hello a=1 =skip b=`, []KV{{"a", "1"}, {"b", ""}}},
		{`no pairs here`, nil},
		{"tab\tk=v", []KV{{"k", "v"}}},
	}
	for _, tt := range tests {
		got := KeyValues(tt.line)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("KeyValues(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestJSONValue(t *testing.T) {
	v, ok := JSONValue(`{"level":"info","n":3}`)
	if !ok {
		t.Fatalf("expected valid json")
	}
	obj, ok := v.(map[string]any)
	if !ok || obj["level"] != "info" || obj["n"] != float64(3) {
		t.Fatalf("unexpected object: %#v", v)
	}
	if _, ok := JSONValue(`{"broken":`); ok {
		t.Fatalf("expected invalid json")
	}
	if _, ok := JSONValue(""); ok {
		t.Fatalf("expected empty line to be rejected")
	}
}

func TestFields(t *testing.T) {
	f := Fields(`level=error status=503 ok=true path=/v1`)
	if f["level"] != "error" || f["status"] != float64(503) || f["ok"] != true || f["path"] != "/v1" {
		t.Fatalf("unexpected fields: %#v", f)
	}
	j := Fields(`{"status":200}`)
	if j["status"] != float64(200) {
		t.Fatalf("unexpected json fields: %#v", j)
	}
}
