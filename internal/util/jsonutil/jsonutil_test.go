package jsonutil

import (
	"errors"
	"testing"
)

func TestDecodeObject(t *testing.T) {
	obj, err := DecodeObject([]byte(` {"chartType":"bar"} `))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if obj["chartType"] != "bar" {
		t.Fatalf("unexpected object %v", obj)
	}

	if _, err := DecodeObject([]byte(`[1,2]`)); !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
	if _, err := DecodeObject([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Fatalf("expected trailing data error")
	}
	if _, err := DecodeObject([]byte(`{a:1}`)); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"k": "<b>&"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"k":"<b>&"}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestUnmarshalFlex_UnwrapsQuotedPayload(t *testing.T) {
	var v map[string]any
	if err := UnmarshalFlex([]byte(`"{\"grid\":\"none\"}"`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v["grid"] != "none" {
		t.Fatalf("unexpected value %v", v)
	}
}
