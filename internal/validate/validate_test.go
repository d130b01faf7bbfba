package validate_test

import (
	"testing"

	"github.com/TheRipper284/mh/internal/validate"
)

func TestTable(t *testing.T) {
	for _, ok := range []string{"1", "7", "13", " 5 "} {
		if _, valid := validate.Table(ok); !valid {
			t.Fatalf("table %q should be valid", ok)
		}
	}
	for _, bad := range []string{"0", "14", "-1", "abc", ""} {
		if _, valid := validate.Table(bad); valid {
			t.Fatalf("table %q should be rejected", bad)
		}
	}
}

func TestPrice(t *testing.T) {
	if p, ok := validate.Price("120.50"); !ok || p == nil || *p != 120.50 {
		t.Fatalf("want 120.50, got %v ok=%v", p, ok)
	}
	if p, ok := validate.Price(""); !ok || p != nil {
		t.Fatalf("empty price means unset, got %v ok=%v", p, ok)
	}
	for _, bad := range []string{"-5", "abc", "1e"} {
		if _, ok := validate.Price(bad); ok {
			t.Fatalf("price %q should be rejected", bad)
		}
	}
}

func TestSize(t *testing.T) {
	if s, ok := validate.Size(" Grande "); !ok || s != "grande" {
		t.Fatalf("want normalized grande, got %q ok=%v", s, ok)
	}
	if _, ok := validate.Size("familiar"); ok {
		t.Fatal("unknown size should be rejected")
	}
	if s, ok := validate.Size(""); !ok || s != "" {
		t.Fatalf("empty size is allowed, got %q ok=%v", s, ok)
	}
}

func TestQtyOrZero(t *testing.T) {
	if n := validate.QtyOrZero("0"); n != 0 {
		t.Fatalf("want 0, got %d", n)
	}
	if n := validate.QtyOrZero("-3"); n != -3 {
		t.Fatalf("negatives pass through for remove semantics, got %d", n)
	}
	if n := validate.QtyOrZero("999"); n != 50 {
		t.Fatalf("want clamp to 50, got %d", n)
	}
}
