package netplay

import "time"

// LivenessTimeout is how long a connected peer can go silent before
// being marked disconnected, per spec.md §5.
const LivenessTimeout = 3 * time.Second

// HeartbeatInterval is how often a connected peer re-broadcasts its
// ready state as a liveness heartbeat, per spec.md §4.5.
const HeartbeatInterval = time.Second

// PeerState is one remote player's lobby record.
type PeerState struct {
	Connected bool
	Ready     bool
	LastSeen  time.Time
}

// Lobby aggregates peer connection and readiness state ahead of a race
// start, grounded directly on spec.md §4.5's lobby protocol and §8
// scenario 6.
type Lobby struct {
	SelfID byte
	peers  [8]PeerState
	now    func() time.Time
}

// NewLobby builds an empty Lobby for selfID, whose own slot is never
// populated by receive handling.
func NewLobby(selfID byte) *Lobby {
	return &Lobby{SelfID: selfID, now: time.Now}
}

// Reset clears every remote player's record without touching self,
// per spec.md §4.5's "on entry: reset remote player table (do not reset
// self)".
func (l *Lobby) Reset() {
	for i := range l.peers {
		if byte(i) == l.SelfID {
			continue
		}
		l.peers[i] = PeerState{}
	}
}

// HandlePacket applies one decoded lobby-relevant packet: LOBBY_JOIN,
// LOBBY_UPDATE and READY all mark the sender connected, refresh its
// liveness timestamp, and set its ready flag; DISCONNECT marks it
// disconnected immediately.
func (l *Lobby) HandlePacket(h Header, payload LobbyPayload) {
	if h.SenderID == l.SelfID || int(h.SenderID) >= len(l.peers) {
		return
	}
	p := &l.peers[h.SenderID]
	switch h.Type {
	case MsgLobbyJoin, MsgLobbyUpdate, MsgReady:
		p.Connected = true
		p.LastSeen = l.now()
		p.Ready = payload.Ready
	case MsgDisconnect:
		p.Connected = false
		p.Ready = false
	}
}

// ExpireStale marks any connected peer whose last-seen timestamp is
// older than LivenessTimeout as disconnected.
func (l *Lobby) ExpireStale() {
	now := l.now()
	for i := range l.peers {
		p := &l.peers[i]
		if p.Connected && now.Sub(p.LastSeen) > LivenessTimeout {
			p.Connected = false
			p.Ready = false
		}
	}
}

// ConnectedCount returns the number of connected remote peers (self
// excluded).
func (l *Lobby) ConnectedCount() int {
	n := 0
	for i := range l.peers {
		if l.peers[i].Connected {
			n++
		}
	}
	return n
}

// AllReady reports the start condition spec.md §4.5 names: at least 2
// connected players total (self + remotes), self is ready, and every
// connected remote is ready.
func (l *Lobby) AllReady(selfReady bool) bool {
	connected := l.ConnectedCount()
	if connected == 0 {
		return false
	}
	if connected+1 < 2 {
		return false
	}
	if !selfReady {
		return false
	}
	for i := range l.peers {
		if l.peers[i].Connected && !l.peers[i].Ready {
			return false
		}
	}
	return true
}

// Peer returns the record for slot id. ok is false only for self or an
// out-of-range id; a remote slot never heard from returns its zero record
// with ok true.
func (l *Lobby) Peer(id byte) (PeerState, bool) {
	if int(id) >= len(l.peers) || id == l.SelfID {
		return PeerState{}, false
	}
	return l.peers[id], true
}
