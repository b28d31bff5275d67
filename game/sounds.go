package game

// Sounds is a fire-and-forget sound command queue. Gameplay code pushes sound
// names during the frame; the host drains the queue after the step and does
// the actual mixing. Nothing synchronizes back into the simulation.
type Sounds struct {
	pending []string
}

// Play queues a sound by name.
func (s *Sounds) Play(name string) {
	if name == "" {
		return
	}
	s.pending = append(s.pending, name)
}

// Drain returns all queued names and empties the queue.
func (s *Sounds) Drain() []string {
	out := s.pending
	s.pending = nil
	return out
}
