package pipeline

import (
	"math/rand"
	"testing"
)

func BenchmarkDerive(b *testing.B) {
	p := randomProfile(rand.New(rand.NewSource(7)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rep := Derive(p, testNow)
		_ = rep
	}
}

func BenchmarkTotals(b *testing.B) {
	r := rand.New(rand.NewSource(7))
	p := randomProfile(r)
	for len(p.Assets) < 5 {
		p = randomProfile(r)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t := Totals(p)
		_ = t
	}
}
