package cpu

import "testing"

func TestFlagPredicates(t *testing.T) {
	for i := 0; i < 256; i++ {
		v := uint8(i)
		if got, want := isZero(v), i == 0; got != want {
			t.Errorf("isZero(%.2X): got %t want %t", v, got, want)
		}
		if got, want := isNegative(v), int8(v) < 0; got != want {
			t.Errorf("isNegative(%.2X): got %t want %t", v, got, want)
		}
	}
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			if got, want := compareCarry(uint8(a), uint8(b)), a >= b; got != want {
				t.Fatalf("compareCarry(%.2X, %.2X): got %t want %t", a, b, got, want)
			}
			sum := uint16(a) + uint16(b)
			if got, want := addCarry(sum), a+b > 255; got != want {
				t.Fatalf("addCarry(%.4X): got %t want %t", sum, got, want)
			}
			signed := int(int8(a)) + int(int8(b))
			if got, want := addOverflow(uint8(a), uint8(b), uint8(sum)), signed < -128 || signed > 127; got != want {
				t.Fatalf("addOverflow(%.2X, %.2X): got %t want %t", a, b, got, want)
			}
		}
	}
}

func TestSetFlagOnlyTouchesMask(t *testing.T) {
	masks := []uint8{P_CARRY, P_ZERO, P_INTERRUPT, P_DECIMAL, P_OVERFLOW, P_NEGATIVE}
	for _, m := range masks {
		for p := 0; p < 256; p++ {
			r := Registers{P: uint8(p)}
			r.setFlag(m, true)
			if got, want := r.P, uint8(p)|m; got != want {
				t.Fatalf("setFlag(%.2X, true) on %.2X: got %.2X want %.2X", m, p, got, want)
			}
			r.setFlag(m, false)
			if got, want := r.P, uint8(p)&^m; got != want {
				t.Fatalf("setFlag(%.2X, false) on %.2X: got %.2X want %.2X", m, p, got, want)
			}
		}
	}
}
