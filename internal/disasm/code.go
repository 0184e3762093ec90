package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "func_%03X"
	labelNaming = "label_%03X"
	dataNaming  = "data_%03X"
)

// processJumpDestinations generates label names for all jump and call
// destinations.
func (dis *Disasm) processJumpDestinations() {
	for _, address := range set.Sorted(dis.branchDestinations) {
		offsetInfo := dis.offsetInfo(address)

		if offsetInfo.label == "" {
			if dis.callDestinations.Contains(address) {
				offsetInfo.label = fmt.Sprintf(funcNaming, address)
			} else {
				offsetInfo.label = fmt.Sprintf(labelNaming, address)
			}
		}

		// a destination that is the second byte of an instruction means
		// that the instruction is not really code or the program modifies
		// itself.
		if offsetInfo.typ == codeOperand {
			dis.handleJumpIntoInstruction(address)
		}
	}
}

// processDataReferences generates label names for all addresses that are
// loaded into the index register.
func (dis *Disasm) processDataReferences() {
	for _, address := range set.Sorted(dis.dataReferences) {
		offsetInfo := dis.offsetInfo(address)
		if offsetInfo.label == "" {
			offsetInfo.label = fmt.Sprintf(dataNaming, address)
		}
	}
}

// handleJumpIntoInstruction converts an instruction that has a jump
// destination label inside its second byte into data.
func (dis *Disasm) handleJumpIntoInstruction(address uint16) {
	start := address - 1
	offsetInfo := dis.offsetInfo(start)
	if offsetInfo.typ != codeOffset {
		return
	}

	offsetInfo.comment = "branch into instruction detected: " + offsetInfo.ins.String()
	offsetInfo.typ = codeAsData
	dis.offsetInfo(address).typ = codeAsData
}
