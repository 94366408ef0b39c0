package game

import "testing"

func TestPRNGSameSeedSameSequence(t *testing.T) {
	a := NewPRNG(42)
	b := NewPRNG(42)
	for i := 0; i < 1000; i++ {
		av, bv := a.Next(), b.Next()
		if av != bv {
			t.Fatalf("sequence diverged at step %d: %d != %d", i, av, bv)
		}
	}
}

func TestPRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewPRNG(1)
	b := NewPRNG(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 1 and 2 produced identical sequences")
	}
}

func TestPRNGZeroSeedFallback(t *testing.T) {
	p := NewPRNG(0)
	if p.State() != defaultSeed {
		t.Errorf("zero seed not replaced: state = %#x, want %#x", p.State(), defaultSeed)
	}
	q := NewPRNG(defaultSeed)
	if p.Next() != q.Next() {
		t.Error("zero-seeded generator should match the default-seeded one")
	}

	p.SetState(0)
	if p.State() != defaultSeed {
		t.Errorf("SetState(0) not replaced: state = %#x", p.State())
	}
}

func TestPRNGSetStateResumes(t *testing.T) {
	a := NewPRNG(7)
	for i := 0; i < 10; i++ {
		a.Next()
	}
	b := NewPRNG(1)
	b.SetState(a.State())
	for i := 0; i < 100; i++ {
		if av, bv := a.Next(), b.Next(); av != bv {
			t.Fatalf("resumed generator diverged at step %d: %d != %d", i, av, bv)
		}
	}
}

func TestPRNGNextFloatRange(t *testing.T) {
	p := NewPRNG(99)
	for i := 0; i < 1000; i++ {
		f := p.NextFloat()
		if f < 0 || f >= 1 {
			t.Fatalf("NextFloat out of [0,1): %v", f)
		}
	}
}

func TestPRNGNextIntInclusive(t *testing.T) {
	p := NewPRNG(123)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := p.NextInt(3, 6)
		if v < 3 || v > 6 {
			t.Fatalf("NextInt(3,6) out of range: %d", v)
		}
		seen[v] = true
	}
	for v := 3; v <= 6; v++ {
		if !seen[v] {
			t.Errorf("NextInt(3,6) never produced %d in 1000 draws", v)
		}
	}
	if got := p.NextInt(5, 5); got != 5 {
		t.Errorf("NextInt(5,5) = %d, want 5", got)
	}
}

func TestPRNGNextBoolExtremes(t *testing.T) {
	p := NewPRNG(55)
	for i := 0; i < 100; i++ {
		if p.NextBool(0) {
			t.Fatal("NextBool(0) returned true")
		}
		if !p.NextBool(1.1) {
			t.Fatal("NextBool(1.1) returned false")
		}
	}
}
