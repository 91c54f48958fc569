package netplay

import (
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// BroadcastPort is the single well-known UDP port every peer listens on
// and broadcasts to, per spec.md §4.5.
const BroadcastPort = 47110

// BroadcastAddr is the LAN broadcast destination spec.md §6 names.
const BroadcastAddr = "255.255.255.255"

// Socket is a non-blocking UDP broadcast endpoint with SO_REUSEADDR (so
// multiple peers on one host can bind the same port during local
// testing) and SO_BROADCAST (required to send to 255.255.255.255) set
// before bind, grounded on the teacher's transitive golang.org/x/sys
// dependency doing the literal socket-option job here instead of being
// pulled in only to satisfy gRPC's transport.
type Socket struct {
	conn    *net.UDPConn
	localIP net.IP
}

// Open binds a UDP socket on BroadcastPort with broadcast enabled.
func Open() (*Socket, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				if sockErr != nil {
					return
				}
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	pc, err := lc.ListenPacket(nil, "udp4", fmt.Sprintf(":%d", BroadcastPort))
	if err != nil {
		return nil, fmt.Errorf("netplay: open socket: %w", err)
	}
	conn := pc.(*net.UDPConn)
	if err := conn.SetReadBuffer(64 * 1024); err != nil {
		conn.Close()
		return nil, fmt.Errorf("netplay: set read buffer: %w", err)
	}

	return &Socket{conn: conn, localIP: localOutboundIP()}, nil
}

// localOutboundIP best-efforts the host's LAN-facing address, used to
// filter self-sent broadcasts. A failure here is not fatal; the zero IP
// simply disables self-filtering by address, falling back to the
// sender-id check the race protocol already performs.
func localOutboundIP() net.IP {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return nil
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil
	}
	return addr.IP
}

// Send broadcasts buf to every peer on the LAN.
func (s *Socket) Send(buf []byte) error {
	dst := &net.UDPAddr{IP: net.ParseIP(BroadcastAddr), Port: BroadcastPort}
	_, err := s.conn.WriteToUDP(buf, dst)
	return err
}

// Receive performs one read with a 1ms deadline. ok is false when nothing
// arrives within that window (or on any other read error); the socket is
// never torn down.
// Self-sent broadcasts are filtered by source IP when known.
func (s *Socket) Receive() (buf []byte, ok bool) {
	s.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	var raw [PacketSize]byte
	n, addr, err := s.conn.ReadFromUDP(raw[:])
	if err != nil {
		return nil, false
	}
	if s.localIP != nil && addr.IP.Equal(s.localIP) {
		return nil, false
	}
	if n != PacketSize {
		return nil, false
	}
	out := make([]byte, PacketSize)
	copy(out, raw[:])
	return out, true
}

// Close broadcasts DISCONNECT and releases the socket, per spec.md
// §4.5's Multiplayer_Cleanup.
func (s *Socket) Close(senderID byte) error {
	pkt := EncodeDisconnect(senderID)
	_ = s.Send(pkt[:])
	return s.conn.Close()
}
