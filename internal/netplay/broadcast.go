package netplay

import (
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/fixedmath"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/kart"
	"github.com/Bahey-shalash/Kart-Mania-sub001/internal/race"
)

// CarUpdateEveryTicks sends CAR_UPDATE once every 4 physics ticks (15Hz
// at a 60Hz tick rate), per spec.md §4.5.
const CarUpdateEveryTicks = 4

// Peer drives one race's wire traffic: it owns the broadcast socket and
// lobby table, and dispatches inbound packets into a race.RaceState,
// grounded on the teacher's server/grpc.go createRaceUpdate/
// StreamRaceUpdates publish loop reshaped around a broadcast socket
// instead of a gRPC stream.
type Peer struct {
	sock      *Socket
	lobby     *Lobby
	selfID    byte
	selfReady bool
	tickCount int64
}

// NewPeer opens a broadcast socket and lobby table for selfID.
func NewPeer(selfID byte) (*Peer, error) {
	sock, err := Open()
	if err != nil {
		return nil, err
	}
	return &Peer{sock: sock, lobby: NewLobby(selfID), selfID: selfID}, nil
}

// Close sends DISCONNECT and releases the socket.
func (p *Peer) Close() error {
	return p.sock.Close(p.selfID)
}

// JoinLobby announces this peer's presence with LOBBY_JOIN.
func (p *Peer) JoinLobby() error {
	pkt := EncodeLobby(MsgLobbyJoin, p.selfID, LobbyPayload{Ready: p.selfReady})
	return p.sock.Send(pkt[:])
}

// SetReady updates local readiness and broadcasts it immediately.
func (p *Peer) SetReady(ready bool) error {
	p.selfReady = ready
	pkt := EncodeLobby(MsgReady, p.selfID, LobbyPayload{Ready: ready})
	return p.sock.Send(pkt[:])
}

// Heartbeat re-broadcasts current readiness as a LOBBY_UPDATE, meant to
// be called roughly once per HeartbeatInterval.
func (p *Peer) Heartbeat() error {
	pkt := EncodeLobby(MsgLobbyUpdate, p.selfID, LobbyPayload{Ready: p.selfReady})
	return p.sock.Send(pkt[:])
}

// AllReady reports whether the lobby start condition is met.
func (p *Peer) AllReady() bool {
	return p.lobby.AllReady(p.selfReady)
}

// PumpLobby drains pending packets into the lobby table and expires
// stale peers. Call this at whatever cadence the lobby screen polls at.
func (p *Peer) PumpLobby() {
	for {
		buf, ok := p.sock.Receive()
		if !ok {
			break
		}
		if !ValidPacket(buf) {
			continue
		}
		h := decodeHeader(buf)
		switch h.Type {
		case MsgLobbyJoin, MsgLobbyUpdate, MsgReady, MsgDisconnect:
			p.lobby.HandlePacket(h, DecodeLobby(buf))
		}
	}
	p.lobby.ExpireStale()
}

// PumpRace drains pending race-time packets and applies them to r,
// dispatching CAR_UPDATE/ITEM_PLACEMENT/BOX_PICKUP into the exported
// RaceState receive methods built in internal/race/netreceive.go.
func (p *Peer) PumpRace(r *race.RaceState) {
	for {
		buf, ok := p.sock.Receive()
		if !ok {
			break
		}
		if !ValidPacket(buf) {
			continue
		}
		h := decodeHeader(buf)
		switch h.Type {
		case MsgCarUpdate:
			cu := DecodeCarUpdate(buf)
			r.ApplyCarUpdate(
				int32(h.SenderID),
				fixedmath.Vec2{X: fixedmath.Q16_8(cu.PosX), Y: fixedmath.Q16_8(cu.PosY)},
				fixedmath.Q16_8(cu.Speed),
				fixedmath.Angle(cu.Angle),
				cu.Lap,
				kart.ItemTag(cu.Item),
			)
		case MsgItemPlacement:
			ip := DecodeItemPlacement(buf)
			r.ApplyItemPlacement(
				kart.ItemTag(ip.Tag),
				fixedmath.Vec2{X: fixedmath.Q16_8(ip.PosX), Y: fixedmath.Q16_8(ip.PosY)},
				fixedmath.Angle(ip.Angle),
				fixedmath.Q16_8(ip.Speed),
			)
		case MsgBoxPickup:
			bp := DecodeBoxPickup(buf)
			r.ApplyBoxPickup(bp.Index)
		case MsgDisconnect:
			p.lobby.HandlePacket(h, LobbyPayload{})
		}
	}
}

// BroadcastCarState sends this peer's own kart state as CAR_UPDATE. Call
// it once per physics tick: it counts the calls and only sends on every
// CarUpdateEveryTicks-th one.
func (p *Peer) BroadcastCarState(k *kart.Kart, lap int32) error {
	p.tickCount++
	if p.tickCount%CarUpdateEveryTicks != 0 {
		return nil
	}
	pkt := EncodeCarUpdate(p.selfID, CarUpdatePayload{
		PosX:  int32(k.Position.X),
		PosY:  int32(k.Position.Y),
		Speed: int32(k.Speed),
		Angle: int32(k.Angle),
		Lap:   lap,
		Item:  int32(k.Item),
	})
	return p.sock.Send(pkt[:])
}

// BroadcastItemPlacement announces a newly placed track item or hazard.
func (p *Peer) BroadcastItemPlacement(tag kart.ItemTag, pos fixedmath.Vec2, angle fixedmath.Angle, speed fixedmath.Q16_8) error {
	pkt := EncodeItemPlacement(p.selfID, ItemPlacementPayload{
		Tag:   int32(tag),
		PosX:  int32(pos.X),
		PosY:  int32(pos.Y),
		Angle: int32(angle),
		Speed: int32(speed),
	})
	return p.sock.Send(pkt[:])
}

// BroadcastBoxPickup announces this peer claimed item box index.
func (p *Peer) BroadcastBoxPickup(index int32) error {
	pkt := EncodeBoxPickup(p.selfID, BoxPickupPayload{Index: index})
	return p.sock.Send(pkt[:])
}
