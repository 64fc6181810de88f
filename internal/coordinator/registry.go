package coordinator

// registry maps a live connection to the session it plays in. It is
// guarded by the coordinator's mutex.
type registry struct {
	bySession map[string]map[string]struct{}
	byConn    map[string]string
}

func newRegistry() *registry {
	return &registry{
		bySession: map[string]map[string]struct{}{},
		byConn:    map[string]string{},
	}
}

func (r *registry) bind(connID, sessionID string) {
	if prev, ok := r.byConn[connID]; ok {
		r.unbind(connID, prev)
	}
	r.byConn[connID] = sessionID
	conns := r.bySession[sessionID]
	if conns == nil {
		conns = map[string]struct{}{}
		r.bySession[sessionID] = conns
	}
	conns[connID] = struct{}{}
}

// unbind removes connID only while it still points at sessionID.
func (r *registry) unbind(connID, sessionID string) {
	if r.byConn[connID] != sessionID {
		return
	}
	delete(r.byConn, connID)
	if conns := r.bySession[sessionID]; conns != nil {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(r.bySession, sessionID)
		}
	}
}

func (r *registry) dropSession(sessionID string) {
	for connID := range r.bySession[sessionID] {
		delete(r.byConn, connID)
	}
	delete(r.bySession, sessionID)
}

func (r *registry) lookup(connID string) (string, bool) {
	id, ok := r.byConn[connID]
	return id, ok
}

func (r *registry) len() int {
	return len(r.byConn)
}
