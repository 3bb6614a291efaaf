package game

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(12345)
	b := NewRNG(12345)
	for i := 0; i < 200; i++ {
		va, vb := a.Float(), b.Float()
		if va != vb {
			t.Fatalf("draw %d: %v != %v", i, va, vb)
		}
	}
}

func TestRNGUnitInterval(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestRNGRangeBounds(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 1000; i++ {
		v := r.Range(5, 10)
		if v < 5 || v >= 10 {
			t.Fatalf("draw %d out of [5,10): %v", i, v)
		}
	}
}

func TestRNGSeedsDiffer(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != b.Float() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("seeds 1 and 2 produced identical first 10 draws")
	}
}
