package debugui

// History is a fixed-size ring of samples laid out for imgui plot widgets.
type History struct {
	samples []float32
	next    int
	filled  int
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{samples: make([]float32, size)}
}

// Push records a sample, overwriting the oldest once the ring is full.
func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average is the mean of the recorded samples, or 0 before the first push.
func (h *History) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:h.filled] {
		sum += v
	}
	return sum / float32(h.filled)
}

// Max is the largest recorded sample.
func (h *History) Max() float32 {
	var m float32
	for _, v := range h.samples[:h.filled] {
		m = max(m, v)
	}
	return m
}

// Samples returns the backing buffer in storage order.
func (h *History) Samples() []float32 { return h.samples }

func (h *History) Len() int { return h.filled }
