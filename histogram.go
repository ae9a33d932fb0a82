package sniffkit

// Histogram counts the occurrences of every byte value in a buffer.
// It is read-only once built.
type Histogram struct {
	counts [256]int
	total  int
}

// BuildHistogram counts every byte of data. Bytes are bucketed by raw value,
// never by decoded character.
func BuildHistogram(data []byte) *Histogram {
	h := &Histogram{total: len(data)}
	for _, b := range data {
		h.counts[b]++
	}
	return h
}

// Count returns the number of occurrences of b.
func (h *Histogram) Count(b byte) int {
	return h.counts[b]
}

// CountOf returns the summed occurrences of all the given bytes.
func (h *Histogram) CountOf(bs ...byte) int {
	n := 0
	for _, b := range bs {
		n += h.counts[b]
	}
	return n
}

// Total returns the number of bytes counted. It always equals the sum of all
// counts.
func (h *Histogram) Total() int {
	return h.total
}

// Ratio returns the fraction of the counted bytes that are one of bs.
// An empty histogram yields 0.
func (h *Histogram) Ratio(bs ...byte) float64 {
	if h.total == 0 {
		return 0
	}
	return float64(h.CountOf(bs...)) / float64(h.total)
}

// Counts returns a copy of the per-byte counts.
func (h *Histogram) Counts() [256]int {
	return h.counts
}
