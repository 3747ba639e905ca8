package z80

// registerEDBlock fills in the sixteen block transfer/search/IO
// instructions (LDI/LDD/LDIR/LDDR, CPI/CPD/CPIR/CPDR, INI/IND/INIR/INDR,
// OUTI/OUTD/OTIR/OTDR) at ED 0xA0-0xA3/0xA8-0xAB/0xB0-0xB3/0xB8-0xBB.
func registerEDBlock() {
	registerLDBlock(0xA0, +1, false) // LDI
	registerLDBlock(0xA8, -1, false) // LDD
	registerLDBlock(0xB0, +1, true)  // LDIR
	registerLDBlock(0xB8, -1, true)  // LDDR

	registerCPBlock(0xA1, +1, false) // CPI
	registerCPBlock(0xA9, -1, false) // CPD
	registerCPBlock(0xB1, +1, true)  // CPIR
	registerCPBlock(0xB9, -1, true)  // CPDR

	registerINBlock(0xA2, +1, false) // INI
	registerINBlock(0xAA, -1, false) // IND
	registerINBlock(0xB2, +1, true)  // INIR
	registerINBlock(0xBA, -1, true)  // INDR

	registerOUTBlock(0xA3, +1, false) // OUTI
	registerOUTBlock(0xAB, -1, false) // OUTD
	registerOUTBlock(0xB3, +1, true)  // OTIR
	registerOUTBlock(0xBB, -1, true)  // OTDR
}

func blockMnemonic(base string, repeat bool) string {
	if repeat {
		return base + "R"
	}
	return base
}

func registerLDBlock(op int, dir int16, repeat bool) {
	name := blockMnemonic(ldBlockName(dir), repeat)
	edTable[op] = opEntry{cycles: 8, exec: func(c *CPU, idx indexMode) (string, int) {
		v := c.bus.ReadMem(c.reg.HL())
		c.bus.WriteMem(c.reg.DE(), v)
		c.reg.SetHL(c.reg.HL() + uint16(dir))
		c.reg.SetDE(c.reg.DE() + uint16(dir))
		bc := c.reg.BC() - 1
		c.reg.SetBC(bc)

		tmp := v + c.reg.A
		c.reg.ResetFlag(FlagH)
		c.reg.ResetFlag(FlagN)
		c.reg.PutFlag(FlagP, bc != 0)
		c.reg.PutFlag(Flag5, tmp&0x02 != 0)
		c.reg.PutFlag(Flag3, tmp&0x08 != 0)

		if repeat && bc != 0 {
			c.reg.SetPC(c.reg.PC() - 2)
			return name, 5
		}
		return name, 0
	}}
}

func ldBlockName(dir int16) string {
	if dir > 0 {
		return "LDI"
	}
	return "LDD"
}

func registerCPBlock(op int, dir int16, repeat bool) {
	name := blockMnemonic(cpBlockName(dir), repeat)
	edTable[op] = opEntry{cycles: 8, exec: func(c *CPU, idx indexMode) (string, int) {
		v := c.bus.ReadMem(c.reg.HL())
		c.reg.SetHL(c.reg.HL() + uint16(dir))
		bc := c.reg.BC() - 1
		c.reg.SetBC(bc)

		result, in := sub8(c.reg.A, v, false)
		in.result = result
		c.applyFlags(tmplCp8, in)
		c.reg.PutFlag(FlagP, bc != 0)

		tmp := result
		if in.half {
			tmp--
		}
		c.reg.PutFlag(Flag5, tmp&0x02 != 0)
		c.reg.PutFlag(Flag3, tmp&0x08 != 0)

		if repeat && bc != 0 && !c.reg.Flag(FlagZ) {
			c.reg.SetPC(c.reg.PC() - 2)
			return name, 5
		}
		return name, 0
	}}
}

func cpBlockName(dir int16) string {
	if dir > 0 {
		return "CPI"
	}
	return "CPD"
}

func registerINBlock(op int, dir int16, repeat bool) {
	name := blockMnemonic(inBlockName(dir), repeat)
	edTable[op] = opEntry{cycles: 8, exec: func(c *CPU, idx indexMode) (string, int) {
		v := c.io.ReadPort(c.reg.BC())
		c.bus.WriteMem(c.reg.HL(), v)
		c.reg.SetHL(c.reg.HL() + uint16(dir))
		c.reg.B = c.reg.B - 1
		c.reg.PutFlag(FlagZ, c.reg.B == 0)
		c.reg.SetFlag(FlagN)

		if repeat && c.reg.B != 0 {
			c.reg.SetPC(c.reg.PC() - 2)
			return name, 5
		}
		return name, 0
	}}
}

func inBlockName(dir int16) string {
	if dir > 0 {
		return "INI"
	}
	return "IND"
}

func registerOUTBlock(op int, dir int16, repeat bool) {
	name := blockMnemonic(outBlockName(dir), repeat)
	edTable[op] = opEntry{cycles: 8, exec: func(c *CPU, idx indexMode) (string, int) {
		v := c.bus.ReadMem(c.reg.HL())
		c.io.WritePort(c.reg.BC(), v)
		c.reg.SetHL(c.reg.HL() + uint16(dir))
		c.reg.B = c.reg.B - 1
		c.reg.PutFlag(FlagZ, c.reg.B == 0)
		c.reg.SetFlag(FlagN)

		if repeat && c.reg.B != 0 {
			c.reg.SetPC(c.reg.PC() - 2)
			return name, 5
		}
		return name, 0
	}}
}

func outBlockName(dir int16) string {
	if dir > 0 {
		return "OUTI"
	}
	return "OUTD"
}
