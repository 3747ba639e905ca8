package z80

import (
	"encoding/binary"
	"errors"
)

// serializeVersion is incremented whenever the binary layout below changes.
const serializeVersion = 1

// serializeSize is the number of bytes Serialize writes and Deserialize
// expects. Update alongside the layout if either changes.
const serializeSize = 42

// SerializeSize returns the number of bytes needed for Serialize.
func (c *CPU) SerializeSize() int { return serializeSize }

// Serialize writes the full CPU state (registers, shadow bank, interrupt
// latches, and cumulative T-state count) into buf, which must be at least
// SerializeSize() bytes. Bus/IOBus references and IM0Ack are not included;
// a restored CPU must be reattached to its host's buses by the caller.
func (c *CPU) Serialize(buf []byte) error {
	if len(buf) < serializeSize {
		return errors.New("z80: serialize buffer too small")
	}

	buf[0] = serializeVersion
	off := 1

	r := &c.reg
	fields := []uint8{
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L,
		r.A_, r.F_, r.B_, r.C_, r.D_, r.E_, r.H_, r.L_,
		r.IXH, r.IXL, r.IYH, r.IYL,
		r.I, r.R,
		r.SPH, r.SPL, r.PCH, r.PCL,
		r.InterruptMode,
	}
	for _, b := range fields {
		buf[off] = b
		off++
	}

	buf[off] = boolByte(r.IFF1)
	off++
	buf[off] = boolByte(r.IFF2)
	off++
	buf[off] = boolByte(r.Halted)
	off++

	buf[off] = boolByte(c.pendingNMI)
	off++
	buf[off] = boolByte(c.pendingINT)
	off++
	buf[off] = boolByte(c.eiDelay)
	off++

	binary.BigEndian.PutUint64(buf[off:], c.cycles)
	off += 8

	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Deserialize restores CPU state from buf, which must be at least
// SerializeSize() bytes produced by Serialize at a matching version. The
// bus, io, and IM0Ack fields are left unchanged; a caller resuming
// execution must have already wired a CPU to the buses it wants.
func (c *CPU) Deserialize(buf []byte) error {
	if len(buf) < serializeSize {
		return errors.New("z80: deserialize buffer too small")
	}
	if buf[0] != serializeVersion {
		return errors.New("z80: unsupported serialize version")
	}
	off := 1

	r := &c.reg
	ptrs := []*uint8{
		&r.A, &r.F, &r.B, &r.C, &r.D, &r.E, &r.H, &r.L,
		&r.A_, &r.F_, &r.B_, &r.C_, &r.D_, &r.E_, &r.H_, &r.L_,
		&r.IXH, &r.IXL, &r.IYH, &r.IYL,
		&r.I, &r.R,
		&r.SPH, &r.SPL, &r.PCH, &r.PCL,
		&r.InterruptMode,
	}
	for _, p := range ptrs {
		*p = buf[off]
		off++
	}

	r.IFF1 = buf[off] != 0
	off++
	r.IFF2 = buf[off] != 0
	off++
	r.Halted = buf[off] != 0
	off++

	c.pendingNMI = buf[off] != 0
	off++
	c.pendingINT = buf[off] != 0
	off++
	c.eiDelay = buf[off] != 0
	off++

	c.cycles = binary.BigEndian.Uint64(buf[off:])
	off += 8

	return nil
}
