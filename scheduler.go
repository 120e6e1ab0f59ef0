package scrollview

// Task is a handle for a per-frame callback or running action registered
// with a Scheduler. Cancel it to stop it; handles stay valid after the task
// finishes.
type Task struct {
	id        uint32
	target    *Node
	fn        func(dt float64)
	action    Action
	cancelled bool
	done      bool
}

// Cancel stops the task. Safe to call more than once and on a nil handle.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Done reports whether the task has finished or been cancelled.
func (t *Task) Done() bool {
	return t == nil || t.cancelled || t.done
}

// Scheduler runs per-frame callbacks and actions. There is no global
// scheduler; each Scene owns one and ticks it from Update.
type Scheduler struct {
	tasks   []*Task
	pending []*Task
	ticking bool
	nextID  uint32
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule registers fn to be called once per Update with the elapsed time in
// seconds. When target is non-nil the task skips frames while the target is
// paused and ends once the target is disposed.
func (s *Scheduler) Schedule(target *Node, fn func(dt float64)) *Task {
	s.nextID++
	t := &Task{id: s.nextID, target: target, fn: fn}
	s.add(t)
	return t
}

// RunAction starts a on target. The returned task finishes when the action does.
func (s *Scheduler) RunAction(target *Node, a Action) *Task {
	s.nextID++
	t := &Task{id: s.nextID, target: target, action: a}
	s.add(t)
	return t
}

func (s *Scheduler) add(t *Task) {
	if s.ticking {
		// Tasks registered during a tick start on the next one.
		s.pending = append(s.pending, t)
		return
	}
	s.tasks = append(s.tasks, t)
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Done() {
			n++
		}
	}
	for _, t := range s.pending {
		if !t.Done() {
			n++
		}
	}
	return n
}

// CancelAll cancels every task bound to target.
func (s *Scheduler) CancelAll(target *Node) {
	for _, t := range s.tasks {
		if t.target == target {
			t.Cancel()
		}
	}
	for _, t := range s.pending {
		if t.target == target {
			t.Cancel()
		}
	}
}

// Update advances every live task by dt seconds.
func (s *Scheduler) Update(dt float64) {
	s.ticking = true
	for _, t := range s.tasks {
		if t.Done() {
			continue
		}
		if t.target != nil {
			if t.target.IsDisposed() {
				t.done = true
				continue
			}
			if t.target.IsPaused() {
				continue
			}
		}
		if t.action != nil {
			if t.action.Step(t.target, dt) {
				t.done = true
			}
			continue
		}
		t.fn(dt)
	}
	s.ticking = false

	// Compact finished tasks, then admit the ones registered mid-tick.
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Done() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = append(live, s.pending...)
	for i := range s.pending {
		s.pending[i] = nil
	}
	s.pending = s.pending[:0]
}
