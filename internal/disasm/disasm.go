// Package disasm implements a CHIP-8 ROM disassembler. It follows the
// execution flow of the program starting at the program start address to
// separate code from data, generates labels for all branch destinations and
// data references and writes an assembly listing.
package disasm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// offsetType describes the content of a single program byte.
type offsetType uint8

const (
	dataOffset    offsetType = iota // byte not reached by the execution flow
	codeOffset                      // first byte of an instruction
	codeOperand                     // second byte of an instruction
	codeAsData                      // instruction that got converted back to data
)

// offset contains the disassembly information of a single program byte.
type offset struct {
	typ     offsetType
	ins     opcode.Instruction
	label   string
	comment string
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	data    []byte
	offsets []offset

	branchDestinations set.Set[uint16] // set of all addresses that are branched to
	callDestinations   set.Set[uint16] // subset of branch destinations that are called
	dataReferences     set.Set[uint16] // addresses loaded into I

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
	offsetsParsed       set.Set[uint16]
}

// New creates a new disassembler for the program image that gets loaded at
// the program start address.
func New(logger *log.Logger, program []byte, options options.Disassembler) (*Disasm, error) {
	if len(program) == 0 {
		return nil, errors.New("program is empty")
	}
	if len(program) > memory.Size-memory.ProgramStart {
		return nil, fmt.Errorf("%w: %d bytes", memory.ErrProgramTooLarge, len(program))
	}

	return &Disasm{
		logger:              logger,
		options:             options,
		data:                program,
		offsets:             make([]offset, len(program)),
		branchDestinations:  set.New[uint16](),
		callDestinations:    set.New[uint16](),
		dataReferences:      set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
		offsetsParsed:       set.New[uint16](),
	}, nil
}

// Process disassembles the program and writes the assembly listing.
func (dis *Disasm) Process(ctx context.Context, writer io.Writer) error {
	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}

	dis.processJumpDestinations()
	dis.processDataReferences()

	if err := dis.write(writer); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// followExecutionFlow parses all offsets reachable from the program start.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	dis.addAddressToParse(memory.ProgramStart, false)
	dis.offsetInfo(memory.ProgramStart).label = "start"

	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		if dis.offsetsParsed.Contains(address) {
			continue
		}
		dis.offsetsParsed.Add(address)
		dis.processOffset(address)
	}
	return nil
}

// processOffset decodes the instruction at the address and queues all
// addresses that execution can continue at.
func (dis *Disasm) processOffset(address uint16) {
	index := int(address - memory.ProgramStart)
	if index+1 >= len(dis.data) {
		dis.logger.Debug("Instruction exceeds program end", log.Hex("address", address))
		return
	}

	offsetInfo := &dis.offsets[index]
	if offsetInfo.typ == codeOperand || dis.offsets[index+1].typ == codeOffset {
		dis.logger.Debug("Execution flow overlaps instruction", log.Hex("address", address))
		return
	}

	word := uint16(dis.data[index])<<8 | uint16(dis.data[index+1])
	ins := opcode.Decode(word)
	if !ins.Known() {
		dis.logger.Debug("Unknown instruction",
			log.Hex("address", address),
			log.Hex("opcode", word))
		return
	}

	offsetInfo.typ = codeOffset
	offsetInfo.ins = ins
	dis.offsets[index+1].typ = codeOperand

	dis.handleControlFlow(address, ins)
}

// handleControlFlow queues the addresses that follow the instruction.
func (dis *Disasm) handleControlFlow(address uint16, ins opcode.Instruction) {
	next := address + opcode.Size

	switch {
	case ins.IsJump():
		dis.addAddressToParse(ins.NNN, true)

	case ins.IsCall():
		dis.addAddressToParse(ins.NNN, true)
		if dis.inProgram(ins.NNN) {
			dis.callDestinations.Add(ins.NNN)
		}
		dis.addAddressToParse(next, false)

	case ins.IsSkip():
		dis.addAddressToParse(next, false)
		dis.addAddressToParse(next+opcode.Size, false)

	case ins.IsDataReference():
		if dis.inProgram(ins.NNN) {
			dis.dataReferences.Add(ins.NNN)
		}
		dis.addAddressToParse(next, false)

	case ins.IsReturn(), ins.IsIndirectJump():
		// the destination is only known at runtime

	default:
		dis.addAddressToParse(next, false)
	}
}

// addAddressToParse adds an address to the list to be processed if the
// address is inside the program and has not been added before.
func (dis *Disasm) addAddressToParse(address uint16, isABranchDestination bool) {
	if !dis.inProgram(address) {
		return
	}

	if isABranchDestination {
		dis.branchDestinations.Add(address)
	}

	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// inProgram returns whether the address is part of the loaded program.
func (dis *Disasm) inProgram(address uint16) bool {
	return address >= memory.ProgramStart &&
		int(address-memory.ProgramStart) < len(dis.data)
}

// offsetInfo returns the information of the program byte at the address,
// which has to be inside of the program.
func (dis *Disasm) offsetInfo(address uint16) *offset {
	return &dis.offsets[address-memory.ProgramStart]
}
