package sniffkit

import "testing"

func TestBuildHistogram(t *testing.T) {
	data := []byte("<<a>{b}(c)\xff\xff")
	h := BuildHistogram(data)

	counts := map[byte]int{
		'<': 2, '>': 1, '{': 1, '}': 1, '(': 1, ')': 1,
		'a': 1, 'b': 1, 'c': 1, 0xFF: 2, 'z': 0,
	}
	for b, want := range counts {
		if got := h.Count(b); got != want {
			t.Errorf("Count(%q) = %d, want %d", b, got, want)
		}
	}

	if h.Total() != len(data) {
		t.Errorf("Total() = %d, want %d", h.Total(), len(data))
	}
}

func TestHistogram_CountsSumToTotal(t *testing.T) {
	data := make([]byte, 0, 1024)
	for i := 0; i < 1024; i++ {
		data = append(data, byte(i*7))
	}
	h := BuildHistogram(data)

	sum := 0
	for _, c := range h.Counts() {
		sum += c
	}
	if sum != h.Total() {
		t.Errorf("sum of counts = %d, want %d", sum, h.Total())
	}
}

func TestHistogram_Ratio(t *testing.T) {
	h := BuildHistogram([]byte("<>ab"))
	if got := h.Ratio('<', '>'); got != 0.5 {
		t.Errorf("Ratio('<', '>') = %v, want 0.5", got)
	}
	if got := h.CountOf('<', '>', 'a'); got != 3 {
		t.Errorf("CountOf() = %d, want 3", got)
	}

	empty := BuildHistogram(nil)
	if got := empty.Ratio('<', '>'); got != 0 {
		t.Errorf("empty Ratio() = %v, want 0", got)
	}
	if empty.Total() != 0 {
		t.Errorf("empty Total() = %d, want 0", empty.Total())
	}
}
