package engine2D

import "testing"

func TestSchedulerRunsInOrder(t *testing.T) {
	s := NewScheduler()
	var got []int
	for i := 0; i < 3; i++ {
		s.RequestFrame(func() { got = append(got, i) })
	}

	if n := s.RunFrames(); n != 3 {
		t.Fatalf("Expected 3 callbacks, got %d", n)
	}
	for i, v := range got {
		if v != i {
			t.Errorf("Expected callback %d at position %d, got %d", i, i, v)
		}
	}
	if s.PendingFrames() != 0 {
		t.Errorf("Expected empty queue, got %d", s.PendingFrames())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := 0
	keep := s.RequestFrame(func() { ran++ })
	drop := s.RequestFrame(func() { t.Error("Cancelled callback ran") })

	s.CancelFrame(drop)
	s.CancelFrame(drop)
	s.CancelFrame(FrameID(999))

	s.RunFrames()
	if ran != 1 {
		t.Errorf("Expected 1 run, got %d", ran)
	}

	// cancelling after it ran is a no-op
	s.CancelFrame(keep)
}

func TestSchedulerDefersNestedRequests(t *testing.T) {
	s := NewScheduler()
	runs := 0
	var loop func()
	loop = func() {
		runs++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 4; i++ {
		if n := s.RunFrames(); n != 1 {
			t.Fatalf("Iteration %d: expected 1 callback, got %d", i, n)
		}
	}
	if runs != 4 {
		t.Errorf("Expected 4 runs, got %d", runs)
	}
}

func TestSchedulerListeners(t *testing.T) {
	s := NewScheduler()
	var resized [][2]int
	var moved [][2]float64

	rid := s.OnResize(func(w, h int) { resized = append(resized, [2]int{w, h}) })
	pid := s.OnPointerMove(func(x, y float64) { moved = append(moved, [2]float64{x, y}) })

	if s.Listeners() != 2 {
		t.Fatalf("Expected 2 listeners, got %d", s.Listeners())
	}

	s.DispatchResize(800, 600)
	s.DispatchPointer(1.5, 2.5)

	if len(resized) != 1 || resized[0] != [2]int{800, 600} {
		t.Errorf("Expected one resize to 800x600, got %v", resized)
	}
	if len(moved) != 1 || moved[0] != [2]float64{1.5, 2.5} {
		t.Errorf("Expected one move to (1.5, 2.5), got %v", moved)
	}

	s.RemoveListener(rid)
	s.RemoveListener(pid)
	s.RemoveListener(rid)

	s.DispatchResize(1, 1)
	s.DispatchPointer(3, 3)

	if s.Listeners() != 0 {
		t.Errorf("Expected 0 listeners, got %d", s.Listeners())
	}
	if len(resized) != 1 || len(moved) != 1 {
		t.Errorf("Expected no dispatch after removal, got %d resizes and %d moves", len(resized), len(moved))
	}
}
