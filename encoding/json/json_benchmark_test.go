package json

import "testing"

func BenchmarkUnmarshal(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Unmarshal([]byte(`{"ask":"0.034900","bid":"0.034811","last":"0.034870","timestamp":1700000000000}`), &map[string]any{})
	}
}
