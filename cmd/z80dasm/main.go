package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	z80 "github.com/user-none/go-chip-z80"
)

func main() {
	var org uint16
	var length int

	rootCmd := &cobra.Command{
		Use:   "z80dasm <file>",
		Short: "Disassemble a raw Z80 binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if length > 0 && length < len(data) {
				data = data[:length]
			}
			disassemble(data, org)
			return nil
		},
	}

	rootCmd.Flags().Uint16Var(&org, "org", 0, "load address of the first byte")
	rootCmd.Flags().IntVar(&length, "len", 0, "bytes to disassemble (0 = whole file)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble walks code from org to the end, printing one line per
// instruction: address, raw bytes, and mnemonic.
func disassemble(code []byte, org uint16) {
	addr := org
	for int(addr-org) < len(code) {
		mnemonic, n := z80.Disassemble(code[addr-org:], addr)
		raw := code[addr-org : addr-org+uint16(n)]
		fmt.Printf("%04X  % -12s  %s\n", addr, formatBytes(raw), mnemonic)
		addr += uint16(n)
	}
}

func formatBytes(b []byte) string {
	const hex = "0123456789ABCDEF"
	out := make([]byte, 0, len(b)*3)
	for i, v := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hex[v>>4], hex[v&0xF])
	}
	return string(out)
}
