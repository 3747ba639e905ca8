package z80

import "strings"

// disasmBus serves instruction bytes from a fixed byte slice starting at a
// base address, returning 0 past the end. It never sees a write: exec
// functions that write through (HL)/(IX+d)/(IY+d)/(nn) during disassembly
// (e.g. LD (HL),n) would corrupt a live system if aimed at it, but
// Disassemble only ever points one at a private scratch slice.
type disasmBus struct {
	code []byte
	base uint16
}

func (d *disasmBus) ReadMem(addr uint16) uint8 {
	off := int(addr - d.base)
	if off < 0 || off >= len(d.code) {
		return 0
	}
	return d.code[off]
}
func (d *disasmBus) WriteMem(addr uint16, v uint8) {}

type disasmIO struct{}

func (disasmIO) ReadPort(addr uint16) uint8   { return 0 }
func (disasmIO) WritePort(addr uint16, v uint8) {}

// Disassemble decodes one instruction starting at addr within code (code
// need not begin at addr 0; addr is only used to resolve relative-jump
// targets). It returns the formatted mnemonic and the number of bytes the
// instruction occupies. Unrecognised opcodes return "???" and the number
// of prefix/opcode bytes consumed before decoding failed (at least 1).
//
// Disassemble runs a scratch CPU over code through execOne: it does not
// duplicate the decode tables, so its output always agrees with what Step
// would actually execute.
func Disassemble(code []byte, addr uint16) (string, int) {
	bus := &disasmBus{code: code, base: addr}
	c := New(bus, disasmIO{})
	c.reg.SetPC(addr)
	c.captureFetch = true

	_, mnemonic, err := c.execOne()
	length := len(c.fetchedAll)
	if length == 0 {
		length = 1
	}

	if err != nil {
		return "???", length
	}

	return substitutePlaceholders(mnemonic, c.fetchedImm, addr, length), length
}

// substitutePlaceholders replaces the literal "n", "nn", "e", and "+d"
// tokens exec functions leave in a mnemonic with the actual operand bytes,
// consumed from imm in the order the instruction fetched them (always
// displacement before immediate, per the Z80's own encoding order).
func substitutePlaceholders(mnemonic string, imm []uint8, addr uint16, length int) string {
	var b strings.Builder
	pos := 0
	i := 0
	for i < len(mnemonic) {
		switch {
		case strings.HasPrefix(mnemonic[i:], "+d"):
			d := int8(imm[pos])
			pos++
			if d < 0 {
				b.WriteString(formatHexByte(uint8(-int(d)), "-"))
			} else {
				b.WriteString(formatHexByte(uint8(d), "+"))
			}
			i += 2
		case strings.HasPrefix(mnemonic[i:], "nn"):
			lo, hi := imm[pos], imm[pos+1]
			pos += 2
			b.WriteString(formatHexWord(pair(hi, lo)))
			i += 2
		case mnemonic[i] == 'n':
			b.WriteString(formatHexByte(imm[pos], ""))
			pos++
			i++
		case mnemonic[i] == 'e':
			e := int8(imm[pos])
			pos++
			target := uint16(int32(addr) + int32(length) + int32(e))
			b.WriteString(formatHexWord(target))
			i++
		default:
			b.WriteByte(mnemonic[i])
			i++
		}
	}
	return b.String()
}

func formatHexByte(v uint8, sign string) string {
	const hex = "0123456789ABCDEF"
	if sign != "" {
		return sign + "0x" + string([]byte{hex[v>>4], hex[v&0xF]})
	}
	return "0x" + string([]byte{hex[v>>4], hex[v&0xF]})
}

func formatHexWord(v uint16) string {
	const hex = "0123456789ABCDEF"
	return "0x" + string([]byte{hex[v>>12&0xF], hex[v>>8&0xF], hex[v>>4&0xF], hex[v&0xF]})
}
