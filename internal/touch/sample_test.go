package touch

import "testing"

func TestTouchedMask(t *testing.T) {
	var s Sample
	s.Electrodes[0].Touched = true
	s.Electrodes[3].Touched = true
	s.Electrodes[11].Touched = true

	if got, want := s.TouchedMask(), uint16(1|1<<3|1<<11); got != want {
		t.Fatalf("mask got=%#x want=%#x", got, want)
	}
}

func TestTransitions(t *testing.T) {
	var s Sample
	s.Electrodes[2].NewTouch = true
	s.Electrodes[5].NewRelease = true
	s.Electrodes[7].NewTouch = true

	touched, released := s.Transitions()
	if len(touched) != 2 || touched[0] != 2 || touched[1] != 7 {
		t.Fatalf("unexpected touched: %v", touched)
	}
	if len(released) != 1 || released[0] != 5 {
		t.Fatalf("unexpected released: %v", released)
	}
}
