package interval

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical intervals", 10, 12, 10, 12, true},
		{"b inside a", 8, 18, 10, 12, true},
		{"a inside b", 10, 12, 8, 18, true},
		{"partial overlap right", 10, 12, 11, 13, true},
		{"partial overlap left", 11, 13, 10, 12, true},
		{"adjacent, b after a", 10, 12, 12, 14, false},
		{"adjacent, b before a", 12, 14, 10, 12, false},
		{"disjoint", 8, 9, 14, 16, false},
		{"one hour same slot", 9, 10, 9, 10, true},
		{"full day vs slot", 0, 24, 13, 14, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	// overlaps(a, b) must equal overlaps(b, a) for every pair of valid
	// intervals in the day.
	for aS := 0; aS < 24; aS++ {
		for aE := aS + 1; aE <= 24; aE++ {
			for bS := 0; bS < 24; bS++ {
				for bE := bS + 1; bE <= 24; bE++ {
					ab := Overlaps(aS, aE, bS, bE)
					ba := Overlaps(bS, bE, aS, aE)
					if ab != ba {
						t.Fatalf("asymmetric: Overlaps(%d,%d,%d,%d)=%v but reversed=%v",
							aS, aE, bS, bE, ab, ba)
					}
				}
			}
		}
	}
}

func TestOverlapsReflexive(t *testing.T) {
	for s := 0; s < 24; s++ {
		for e := s + 1; e <= 24; e++ {
			if !Overlaps(s, e, s, e) {
				t.Fatalf("Overlaps(%d,%d,%d,%d) = false, want true", s, e, s, e)
			}
		}
	}
}

func TestValidRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"typical", 9, 11, true},
		{"full day", 0, 24, true},
		{"empty", 10, 10, false},
		{"reversed", 12, 10, false},
		{"negative start", -1, 5, false},
		{"end past midnight", 20, 25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRange(tt.start, tt.end); got != tt.want {
				t.Errorf("ValidRange(%d,%d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
