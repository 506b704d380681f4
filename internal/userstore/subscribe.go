package userstore

// Subscribe returns a channel that receives a snapshot after every
// transition, and a func that unsubscribes and closes the channel.
//
// Delivery is latest-wins: the channel holds at most one pending snapshot
// and an unread one is replaced by the newer state, so a slow reader never
// blocks the store and never sees an outdated snapshot last.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan State, 1)
	s.subs[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, unsubscribe
}

// publishLocked delivers the current state to every subscriber.
// Callers must hold s.mu.
func (s *Store) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	for _, ch := range s.subs {
		snap := s.state.clone()
		select {
		case ch <- snap:
		default:
			// Replace the unread snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
