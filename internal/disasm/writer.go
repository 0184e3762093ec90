package disasm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
)

// dataBytesPerLine is the maximum number of bytes of a .byte line.
const dataBytesPerLine = 8

// write outputs the assembly listing of the processed program.
func (dis *Disasm) write(writer io.Writer) error {
	w := bufio.NewWriter(writer)

	if _, err := fmt.Fprintf(w, "; CHIP-8 program, %d bytes\n\n.org $%03X\n", len(dis.data), memory.ProgramStart); err != nil {
		return err
	}

	for index := 0; index < len(dis.data); {
		offsetInfo := dis.offsets[index]
		address := memory.ProgramStart + uint16(index)

		if offsetInfo.label != "" {
			if _, err := fmt.Fprintf(w, "\n%s:\n", offsetInfo.label); err != nil {
				return err
			}
		}

		var line string
		var size int
		if offsetInfo.typ == codeOffset {
			line, size = dis.codeLine(address, offsetInfo.ins), opcode.Size
		} else {
			line, size = dis.dataLine(index)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		index += size
	}

	return w.Flush()
}

// codeLine returns the listing line of an instruction.
func (dis *Disasm) codeLine(address uint16, ins opcode.Instruction) string {
	code := dis.formatCode(ins)
	data := []byte{byte(ins.Word >> 8), byte(ins.Word)}
	return dis.withComment("  "+code, address, data, "")
}

// formatCode returns the instruction in assembly notation with addresses
// replaced by their label names.
func (dis *Disasm) formatCode(ins opcode.Instruction) string {
	label := dis.labelOf(ins.NNN)
	if label == "" {
		return ins.String()
	}

	switch {
	case ins.IsJump(), ins.IsCall():
		return ins.Mnemonic() + " " + label
	case ins.IsDataReference():
		return ins.Mnemonic() + " I, " + label
	default:
		return ins.String()
	}
}

// labelOf returns the label name of an address inside the program.
func (dis *Disasm) labelOf(address uint16) string {
	if !dis.inProgram(address) {
		return ""
	}
	return dis.offsetInfo(address).label
}

// dataLine returns the listing line of consecutive data bytes starting at the
// index and the number of bytes it covers. A line ends before the next label,
// instruction or comment.
func (dis *Disasm) dataLine(start int) (string, int) {
	end := start + 1
	for end < len(dis.data) && end-start < dataBytesPerLine {
		offsetInfo := dis.offsets[end]
		if offsetInfo.typ == codeOffset || offsetInfo.label != "" || offsetInfo.comment != "" {
			break
		}
		end++
	}

	values := make([]string, 0, end-start)
	for _, b := range dis.data[start:end] {
		values = append(values, fmt.Sprintf("$%02X", b))
	}

	address := memory.ProgramStart + uint16(start)
	line := "  .byte " + strings.Join(values, ", ")
	return dis.withComment(line, address, nil, dis.offsets[start].comment), end - start
}

// withComment appends the enabled comment fields to a listing line.
func (dis *Disasm) withComment(line string, address uint16, data []byte, comment string) string {
	var fields []string
	if dis.options.OffsetComments {
		fields = append(fields, fmt.Sprintf("$%03X", address))
	}
	if dis.options.HexComments && len(data) > 0 {
		fields = append(fields, fmt.Sprintf("% X", data))
	}
	if comment != "" {
		fields = append(fields, comment)
	}

	if len(fields) == 0 {
		return line
	}
	return fmt.Sprintf("%-24s ; %s", line, strings.Join(fields, " "))
}
