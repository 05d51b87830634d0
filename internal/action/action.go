// internal/action/action.go
package action

import (
	"errors"
	"fmt"
)

// DefaultFirmwareFile is the image used by a no-argument invocation.
const DefaultFirmwareFile = "image.bin"

// Set is the resolved intent of one invocation.
// Built once at startup; read-only afterwards.
type Set struct {
	FirmwareFile string
	Update       bool
	Invalidate   bool
	FactoryReset bool
	UpdateReset  bool
}

// ErrUsage marks a command line that could not be parsed.
var ErrUsage = errors.New("action: usage")

// Parse resolves the argument list (without the program name) into a Set.
//
// Flags are applied in order: -f and -u are mutually exclusive and the later
// one wins, clearing the other. That is policy, not a validation error.
// An empty argument list selects the historical default run.
func Parse(args []string) (Set, error) {
	var s Set

	if len(args) == 0 {
		s.FirmwareFile = DefaultFirmwareFile
		s.Update = true
		s.UpdateReset = true
		return s, nil
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-d":
			if i+1 >= len(args) {
				return Set{}, fmt.Errorf("%w: -d requires a file argument", ErrUsage)
			}
			i++
			s.FirmwareFile = args[i]
			s.Update = true

		case "-e":
			s.Invalidate = true

		case "-f":
			s.FactoryReset = true
			s.UpdateReset = false // falsify if -u was given earlier

		case "-u":
			s.UpdateReset = true
			s.FactoryReset = false // falsify if -f was given earlier

		default:
			return Set{}, fmt.Errorf("%w: unknown option %q", ErrUsage, args[i])
		}
	}

	return s, nil
}

// Usage returns the help text printed when parsing fails.
func Usage(prog string) string {
	return fmt.Sprintf("Usage: %s [COMMAND]\n"+
		"-d <UPDATE_IMAGE>: Download update image to IF card\n"+
		"-e : Invalidate the existing update image\n"+
		"-f : Reset to factory image\n"+
		"-u : Reset to update image\n", prog)
}
