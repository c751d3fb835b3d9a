package codec

import (
	"strings"
	"testing"
)

type sample struct {
	B string `cbor:"b"`
	A []int  `cbor:"a"`
}

func TestMarshalDeterministic(t *testing.T) {
	v := sample{B: "x", A: []int{1, 2}}

	first, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("encodings differ: %x vs %x", first, second)
	}

	diag, err := Diagnose(first)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	// Core deterministic encoding sorts map keys.
	if a, b := strings.Index(diag, `"a"`), strings.Index(diag, `"b"`); a < 0 || b < 0 || a > b {
		t.Errorf("Diagnose = %s, want key \"a\" before key \"b\"", diag)
	}

	var got sample
	if err := Unmarshal(first, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.B != "x" || len(got.A) != 2 || got.A[1] != 2 {
		t.Errorf("Unmarshal = %+v", got)
	}
}
