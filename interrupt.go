package z80

// acceptNMI runs the fixed NMI response: IFF1 is saved into IFF2 and
// cleared (RETN restores it), PC is pushed, and execution resumes at the
// fixed vector 0x0066. Always 11 T-states.
func (c *CPU) acceptNMI() int {
	c.reg.IFF2 = c.reg.IFF1
	c.reg.IFF1 = false
	c.push(c.reg.PC())
	c.reg.SetPC(0x0066)
	return 11
}

// acceptINT runs the maskable interrupt response. Both IFF1 and IFF2 are
// already cleared by the caller (Step) before this runs, since an
// interrupt acknowledge disables further maskable interrupts until the
// handler re-enables them with EI.
func (c *CPU) acceptINT() (int, error) {
	switch c.reg.InterruptMode {
	case 1:
		c.push(c.reg.PC())
		c.reg.SetPC(0x0038)
		return 13, nil
	case 2:
		vec := c.ackByte()
		addr := uint16(c.reg.I)<<8 | uint16(vec&0xFE)
		target := pair(c.bus.ReadMem(addr+1), c.bus.ReadMem(addr))
		c.push(c.reg.PC())
		c.reg.SetPC(target)
		return 19, nil
	default: // IM 0
		bytes := c.im0Bytes()
		if len(bytes) == 1 && bytes[0]&0xC7 == 0xC7 {
			c.push(c.reg.PC())
			c.reg.SetPC(uint16(bytes[0] & 0x38))
			return 13, nil
		}
		// No IM 0 device wired in, or it didn't drive a RST: fall back to
		// the common single-peripheral-system behavior of acting like IM 1.
		c.push(c.reg.PC())
		c.reg.SetPC(0x0038)
		return 13, nil
	}
}

func (c *CPU) ackByte() uint8 {
	b := c.im0Bytes()
	if len(b) == 0 {
		return 0xFF
	}
	return b[0]
}

func (c *CPU) im0Bytes() []uint8 {
	if c.IM0Ack == nil {
		return nil
	}
	return c.IM0Ack()
}
