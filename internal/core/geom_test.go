package core

import "testing"

func TestPointWrap(t *testing.T) {
	const w, h = 20, 15

	tests := []struct {
		name     string
		in       Point
		expected Point
	}{
		{"inside board", Point{X: 5, Y: 7}, Point{X: 5, Y: 7}},
		{"zero", Point{X: 0, Y: 0}, Point{X: 0, Y: 0}},
		{"right edge wraps", Point{X: 20, Y: 7}, Point{X: 0, Y: 7}},
		{"bottom edge wraps", Point{X: 5, Y: 15}, Point{X: 5, Y: 0}},
		{"negative x wraps", Point{X: -1, Y: 7}, Point{X: 19, Y: 7}},
		{"negative y wraps", Point{X: 5, Y: -1}, Point{X: 5, Y: 14}},
		{"far past right", Point{X: 45, Y: 7}, Point{X: 5, Y: 7}},
		{"far negative", Point{X: -41, Y: -31}, Point{X: 19, Y: 14}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.in.Wrap(w, h)
			if result != tc.expected {
				t.Errorf("Wrap(%d, %d) = %v, expected %v", w, h, result, tc.expected)
			}
		})
	}
}

func TestPointWrapRange(t *testing.T) {
	// For any input, the wrapped result must land in [0,w) x [0,h).
	const w, h = 7, 11
	for x := -30; x <= 30; x++ {
		for y := -30; y <= 30; y++ {
			p := Point{X: x, Y: y}.Wrap(w, h)
			if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
				t.Fatalf("Wrap(%d, %d) of (%d, %d) out of range: %v", w, h, x, y, p)
			}
		}
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single cell overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
			if r.ContainsPoint(Point{X: tc.x, Y: tc.y}) != tc.expected {
				t.Errorf("ContainsPoint(%d, %d) disagrees with Contains", tc.x, tc.y)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	r := NewRect(5, 5, 3, 2).Expand(2)

	if r.X != 3 || r.Y != 3 {
		t.Errorf("Expand origin = (%d, %d), expected (3, 3)", r.X, r.Y)
	}
	if r.W != 7 || r.H != 6 {
		t.Errorf("Expand size = (%d, %d), expected (7, 6)", r.W, r.H)
	}

	// Expanded rect must contain cells adjacent to the original.
	if !r.Contains(4, 4) {
		t.Error("Expanded rect should contain (4, 4)")
	}
	if !r.Contains(8, 7) {
		t.Error("Expanded rect should contain (8, 7)")
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
