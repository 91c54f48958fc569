// Package netplay implements spec.md §4.5's peer-to-peer UDP broadcast
// protocol: a fixed 32-byte wire packet, a non-blocking broadcast
// socket, a lobby peer table with ready aggregation, and the race-time
// CAR_UPDATE/ITEM_PLACEMENT/BOX_PICKUP dispatch wired into a RaceState.
package netplay

import "encoding/binary"

// ProtocolVersion must match between peers; mismatched packets are
// dropped per spec.md §7.
const ProtocolVersion byte = 1

// PacketSize is the fixed wire packet length spec.md §4.5 mandates.
const PacketSize = 32

// MsgType is byte 1 of every packet.
type MsgType byte

const (
	MsgLobbyJoin MsgType = iota + 1
	MsgLobbyUpdate
	MsgReady
	MsgCarUpdate
	MsgItemPlacement
	MsgBoxPickup
	MsgDisconnect
)

// Header is bytes 0-3 of every packet: version, type, sender slot,
// reserved.
type Header struct {
	Version  byte
	Type     MsgType
	SenderID byte
}

func encodeHeader(buf []byte, h Header) {
	buf[0] = h.Version
	buf[1] = byte(h.Type)
	buf[2] = h.SenderID
	buf[3] = 0
}

func decodeHeader(buf []byte) Header {
	return Header{Version: buf[0], Type: MsgType(buf[1]), SenderID: buf[2]}
}

// CarUpdatePayload is CAR_UPDATE's 28-byte payload: position (8),
// speed (4), angle (4), lap (4), item tag (4), reserved (4).
type CarUpdatePayload struct {
	PosX, PosY int32
	Speed      int32
	Angle      int32
	Lap        int32
	Item       int32
}

// EncodeCarUpdate builds a full 32-byte CAR_UPDATE packet.
func EncodeCarUpdate(senderID byte, p CarUpdatePayload) [PacketSize]byte {
	var buf [PacketSize]byte
	encodeHeader(buf[:], Header{Version: ProtocolVersion, Type: MsgCarUpdate, SenderID: senderID})
	le := binary.LittleEndian
	le.PutUint32(buf[4:8], uint32(p.PosX))
	le.PutUint32(buf[8:12], uint32(p.PosY))
	le.PutUint32(buf[12:16], uint32(p.Speed))
	le.PutUint32(buf[16:20], uint32(p.Angle))
	le.PutUint32(buf[20:24], uint32(p.Lap))
	le.PutUint32(buf[24:28], uint32(p.Item))
	return buf
}

// DecodeCarUpdate reads a CAR_UPDATE payload from a full packet buffer.
func DecodeCarUpdate(buf []byte) CarUpdatePayload {
	le := binary.LittleEndian
	return CarUpdatePayload{
		PosX:  int32(le.Uint32(buf[4:8])),
		PosY:  int32(le.Uint32(buf[8:12])),
		Speed: int32(le.Uint32(buf[12:16])),
		Angle: int32(le.Uint32(buf[16:20])),
		Lap:   int32(le.Uint32(buf[20:24])),
		Item:  int32(le.Uint32(buf[24:28])),
	}
}

// ItemPlacementPayload is ITEM_PLACEMENT's 28-byte payload: item tag
// (4), position (8), angle (4), speed (4), reserved (8). speed == 0
// means a hazard placement, per spec.md §4.5.
type ItemPlacementPayload struct {
	Tag        int32
	PosX, PosY int32
	Angle      int32
	Speed      int32
}

// EncodeItemPlacement builds a full 32-byte ITEM_PLACEMENT packet.
func EncodeItemPlacement(senderID byte, p ItemPlacementPayload) [PacketSize]byte {
	var buf [PacketSize]byte
	encodeHeader(buf[:], Header{Version: ProtocolVersion, Type: MsgItemPlacement, SenderID: senderID})
	le := binary.LittleEndian
	le.PutUint32(buf[4:8], uint32(p.Tag))
	le.PutUint32(buf[8:12], uint32(p.PosX))
	le.PutUint32(buf[12:16], uint32(p.PosY))
	le.PutUint32(buf[16:20], uint32(p.Angle))
	le.PutUint32(buf[20:24], uint32(p.Speed))
	return buf
}

// DecodeItemPlacement reads an ITEM_PLACEMENT payload from a full packet.
func DecodeItemPlacement(buf []byte) ItemPlacementPayload {
	le := binary.LittleEndian
	return ItemPlacementPayload{
		Tag:   int32(le.Uint32(buf[4:8])),
		PosX:  int32(le.Uint32(buf[8:12])),
		PosY:  int32(le.Uint32(buf[12:16])),
		Angle: int32(le.Uint32(buf[16:20])),
		Speed: int32(le.Uint32(buf[20:24])),
	}
}

// BoxPickupPayload is BOX_PICKUP's 28-byte payload: box index (4),
// reserved (24).
type BoxPickupPayload struct {
	Index int32
}

// EncodeBoxPickup builds a full 32-byte BOX_PICKUP packet.
func EncodeBoxPickup(senderID byte, p BoxPickupPayload) [PacketSize]byte {
	var buf [PacketSize]byte
	encodeHeader(buf[:], Header{Version: ProtocolVersion, Type: MsgBoxPickup, SenderID: senderID})
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.Index))
	return buf
}

// DecodeBoxPickup reads a BOX_PICKUP payload from a full packet.
func DecodeBoxPickup(buf []byte) BoxPickupPayload {
	return BoxPickupPayload{Index: int32(binary.LittleEndian.Uint32(buf[4:8]))}
}

// LobbyPayload is LOBBY_JOIN/LOBBY_UPDATE/READY's 28-byte payload:
// is-ready flag (1), reserved (27).
type LobbyPayload struct {
	Ready bool
}

// EncodeLobby builds a full 32-byte LOBBY_* or READY packet.
func EncodeLobby(msgType MsgType, senderID byte, p LobbyPayload) [PacketSize]byte {
	var buf [PacketSize]byte
	encodeHeader(buf[:], Header{Version: ProtocolVersion, Type: msgType, SenderID: senderID})
	if p.Ready {
		buf[4] = 1
	}
	return buf
}

// DecodeLobby reads a LOBBY_* payload from a full packet.
func DecodeLobby(buf []byte) LobbyPayload {
	return LobbyPayload{Ready: buf[4] != 0}
}

// EncodeDisconnect builds a full DISCONNECT packet (no payload beyond the
// header).
func EncodeDisconnect(senderID byte) [PacketSize]byte {
	var buf [PacketSize]byte
	encodeHeader(buf[:], Header{Version: ProtocolVersion, Type: MsgDisconnect, SenderID: senderID})
	return buf
}

// ValidPacket reports whether buf is a full-size packet with a matching
// protocol version; malformed or version-mismatched packets are
// discarded per spec.md §7.
func ValidPacket(buf []byte) bool {
	return len(buf) == PacketSize && buf[0] == ProtocolVersion
}
