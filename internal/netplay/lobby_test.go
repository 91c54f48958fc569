package netplay

import (
	"testing"
	"time"
)

func newTestLobby(selfID byte) (*Lobby, *time.Time) {
	l := NewLobby(selfID)
	clock := time.Now()
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestAllReadyFalseWithOnlyOnePlayer(t *testing.T) {
	l, _ := newTestLobby(0)
	if l.AllReady(true) {
		t.Error("expected AllReady false with no connected peers")
	}
}

func TestAllReadyRequiresEveryConnectedPeerReady(t *testing.T) {
	l, _ := newTestLobby(0)
	l.HandlePacket(Header{Type: MsgLobbyJoin, SenderID: 1}, LobbyPayload{Ready: false})
	if l.AllReady(true) {
		t.Error("expected AllReady false while peer 1 is not ready")
	}
	l.HandlePacket(Header{Type: MsgReady, SenderID: 1}, LobbyPayload{Ready: true})
	if !l.AllReady(true) {
		t.Error("expected AllReady true once peer 1 is ready")
	}
}

// TestScenarioSixThreePeersReadyThenTimeout exercises spec.md §8
// scenario 6: three peers connect, peers 1 and 2 ready up, peer 3
// readies last making AllReady true, then peer 2 goes silent past the
// liveness timeout and AllReady must return to false.
func TestScenarioSixThreePeersReadyThenTimeout(t *testing.T) {
	l, clock := newTestLobby(0)

	l.HandlePacket(Header{Type: MsgLobbyJoin, SenderID: 1}, LobbyPayload{Ready: false})
	l.HandlePacket(Header{Type: MsgLobbyJoin, SenderID: 2}, LobbyPayload{Ready: false})
	l.HandlePacket(Header{Type: MsgLobbyJoin, SenderID: 3}, LobbyPayload{Ready: false})

	l.HandlePacket(Header{Type: MsgReady, SenderID: 1}, LobbyPayload{Ready: true})
	l.HandlePacket(Header{Type: MsgReady, SenderID: 2}, LobbyPayload{Ready: true})
	if l.AllReady(true) {
		t.Fatal("expected AllReady false before peer 3 readies")
	}

	l.HandlePacket(Header{Type: MsgReady, SenderID: 3}, LobbyPayload{Ready: true})
	if !l.AllReady(true) {
		t.Fatal("expected AllReady true once all three peers are ready")
	}

	// Peer 2 misses heartbeats: advance the clock past LivenessTimeout
	// without refreshing peer 2's LastSeen, then expire stale peers.
	*clock = clock.Add(LivenessTimeout + time.Second)
	l.ExpireStale()
	if l.AllReady(true) {
		t.Fatal("expected AllReady false after peer 2 times out")
	}
	p2, ok := l.Peer(2)
	if !ok || p2.Connected {
		t.Fatalf("expected peer 2 disconnected after timeout, got %+v", p2)
	}
}

func TestHandlePacketIgnoresSelf(t *testing.T) {
	l, _ := newTestLobby(0)
	l.HandlePacket(Header{Type: MsgReady, SenderID: 0}, LobbyPayload{Ready: true})
	if l.ConnectedCount() != 0 {
		t.Error("expected self packets to be ignored")
	}
}

func TestDisconnectPacketClearsReady(t *testing.T) {
	l, _ := newTestLobby(0)
	l.HandlePacket(Header{Type: MsgLobbyJoin, SenderID: 1}, LobbyPayload{Ready: true})
	l.HandlePacket(Header{Type: MsgDisconnect, SenderID: 1}, LobbyPayload{})
	p, ok := l.Peer(1)
	if !ok || p.Connected || p.Ready {
		t.Fatalf("expected peer 1 disconnected, got %+v", p)
	}
}

func TestResetPreservesSelfClearsRemotes(t *testing.T) {
	l, _ := newTestLobby(0)
	l.HandlePacket(Header{Type: MsgLobbyJoin, SenderID: 1}, LobbyPayload{Ready: true})
	l.Reset()
	if l.ConnectedCount() != 0 {
		t.Error("expected Reset to clear remote peers")
	}
}
