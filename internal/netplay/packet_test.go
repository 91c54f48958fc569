package netplay

import "testing"

func TestCarUpdateRoundTrip(t *testing.T) {
	want := CarUpdatePayload{PosX: 1234, PosY: -5678, Speed: 900, Angle: 64, Lap: 2, Item: int32(7)}
	pkt := EncodeCarUpdate(3, want)
	if !ValidPacket(pkt[:]) {
		t.Fatal("expected encoded packet to be valid")
	}
	h := decodeHeader(pkt[:])
	if h.Type != MsgCarUpdate || h.SenderID != 3 || h.Version != ProtocolVersion {
		t.Fatalf("unexpected header %+v", h)
	}
	got := DecodeCarUpdate(pkt[:])
	if got != want {
		t.Fatalf("round trip mismatch: want %+v got %+v", want, got)
	}
}

func TestItemPlacementRoundTrip(t *testing.T) {
	want := ItemPlacementPayload{Tag: 5, PosX: 10, PosY: 20, Angle: 30, Speed: 0}
	pkt := EncodeItemPlacement(1, want)
	got := DecodeItemPlacement(pkt[:])
	if got != want {
		t.Fatalf("round trip mismatch: want %+v got %+v", want, got)
	}
}

func TestBoxPickupRoundTrip(t *testing.T) {
	want := BoxPickupPayload{Index: 9}
	pkt := EncodeBoxPickup(2, want)
	got := DecodeBoxPickup(pkt[:])
	if got != want {
		t.Fatalf("round trip mismatch: want %+v got %+v", want, got)
	}
}

func TestLobbyRoundTrip(t *testing.T) {
	pkt := EncodeLobby(MsgReady, 4, LobbyPayload{Ready: true})
	h := decodeHeader(pkt[:])
	if h.Type != MsgReady || h.SenderID != 4 {
		t.Fatalf("unexpected header %+v", h)
	}
	if got := DecodeLobby(pkt[:]); !got.Ready {
		t.Fatalf("expected ready=true, got %+v", got)
	}

	pkt2 := EncodeLobby(MsgLobbyJoin, 0, LobbyPayload{Ready: false})
	if got := DecodeLobby(pkt2[:]); got.Ready {
		t.Fatalf("expected ready=false, got %+v", got)
	}
}

func TestValidPacketRejectsWrongSizeAndVersion(t *testing.T) {
	if ValidPacket([]byte{ProtocolVersion, 1, 2, 3}) {
		t.Error("expected short buffer to be invalid")
	}
	pkt := EncodeDisconnect(0)
	buf := pkt[:]
	buf[0] = ProtocolVersion + 1
	if ValidPacket(buf) {
		t.Error("expected version mismatch to be invalid")
	}
}

func TestDisconnectPacket(t *testing.T) {
	pkt := EncodeDisconnect(6)
	h := decodeHeader(pkt[:])
	if h.Type != MsgDisconnect || h.SenderID != 6 {
		t.Fatalf("unexpected header %+v", h)
	}
}
