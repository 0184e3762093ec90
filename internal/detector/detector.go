// Package detector handles system architecture detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system architecture detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture of a ROM file from its file
// extension. CHIP-8 ROMs have no header, so files with unknown extensions are
// assumed to be CHIP-8 ROMs.
func (d *Detector) Detect(filename string) arch.System {
	system := d.detectFromFile(filename)
	d.logger.Debug("Auto-detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// CheckSupported logs a warning if the file does not look like a CHIP-8 ROM.
// It returns whether the detected system is CHIP-8.
func (d *Detector) CheckSupported(filename string) bool {
	system := d.Detect(filename)
	if system == arch.CHIP8System {
		return true
	}

	d.logger.Warn("File extension indicates a ROM of a different system, running it as CHIP-8 program",
		log.String("file", filename),
		log.Stringer("system", system))
	return false
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8 and .rom as well as raw binary files
		return arch.CHIP8System
	}
}
