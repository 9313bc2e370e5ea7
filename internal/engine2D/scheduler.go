package engine2D

import "sync"

type FrameID uint64

type ListenerID uint64

type pendingFrame struct {
	id FrameID
	fn func()
}

type resizeListener struct {
	id ListenerID
	fn func(width, height int)
}

type pointerListener struct {
	id ListenerID
	fn func(x, y float64)
}

// Scheduler is the host side of the frame loop: revocable frame callbacks
// and resize/pointer listener registration. Callbacks run on whichever
// goroutine calls RunFrames and the Dispatch methods, normally the render
// thread.
type Scheduler struct {
	mu      sync.Mutex
	nextID  uint64
	frames  []pendingFrame
	resize  []resizeListener
	pointer []pointerListener
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) id() uint64 {
	s.nextID++
	return s.nextID
}

// RequestFrame queues fn for the next RunFrames call.
func (s *Scheduler) RequestFrame(fn func()) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := FrameID(s.id())
	s.frames = append(s.frames, pendingFrame{id: id, fn: fn})
	return id
}

// CancelFrame revokes a pending callback. Unknown or already run ids are
// ignored.
func (s *Scheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.frames {
		if f.id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
}

// RunFrames runs every callback queued before the call. Callbacks queued
// while running wait for the next call.
func (s *Scheduler) RunFrames() int {
	s.mu.Lock()
	batch := s.frames
	s.frames = nil
	s.mu.Unlock()

	for _, f := range batch {
		f.fn()
	}
	return len(batch)
}

// PendingFrames returns the number of queued callbacks.
func (s *Scheduler) PendingFrames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *Scheduler) OnResize(fn func(width, height int)) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := ListenerID(s.id())
	s.resize = append(s.resize, resizeListener{id: id, fn: fn})
	return id
}

func (s *Scheduler) OnPointerMove(fn func(x, y float64)) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := ListenerID(s.id())
	s.pointer = append(s.pointer, pointerListener{id: id, fn: fn})
	return id
}

func (s *Scheduler) RemoveListener(id ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.resize {
		if l.id == id {
			s.resize = append(s.resize[:i], s.resize[i+1:]...)
			return
		}
	}
	for i, l := range s.pointer {
		if l.id == id {
			s.pointer = append(s.pointer[:i], s.pointer[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of registered listeners.
func (s *Scheduler) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resize) + len(s.pointer)
}

func (s *Scheduler) DispatchResize(width, height int) {
	s.mu.Lock()
	listeners := append([]resizeListener(nil), s.resize...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(width, height)
	}
}

func (s *Scheduler) DispatchPointer(x, y float64) {
	s.mu.Lock()
	listeners := append([]pointerListener(nil), s.pointer...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(x, y)
	}
}
