package printer

import (
	"fmt"

	"golang.org/x/text/language"
)

// PrintState is the decoded job state of the machine.
type PrintState string

// Known print states. StateIdle is synthesized when the device omits the
// state field entirely.
const (
	StateIdle        PrintState = "idle"
	StateHeating     PrintState = "heating"
	StateBuilding    PrintState = "building"
	StateCooling     PrintState = "cooling"
	StateLoweringBed PrintState = "lowering_bed"
	StateComplete    PrintState = "complete"
)

var printStates = map[int64]PrintState{
	1:      StateHeating,
	2:      StateBuilding,
	5:      StateCooling,
	7:      StateLoweringBed,
	571449: StateComplete,
}

// PrintStateFromCode maps a raw device state code. Codes outside the known
// table surface as unknown(<code>) rather than failing; the rest of the
// status response is still valid.
func PrintStateFromCode(code int64) PrintState {
	if s, ok := printStates[code]; ok {
		return s
	}

	return PrintState(fmt.Sprintf("unknown(%d)", code))
}

// languageFromCode maps the device's LANG code to a BCP 47 language tag.
// Only English (0) and Japanese (1) firmware builds exist; anything else is
// a fatal decode error with no fallback.
func languageFromCode(code int64) (language.Tag, error) {
	switch code {
	case 0:
		return language.English, nil
	case 1:
		return language.Japanese, nil
	default:
		return language.Und, fmt.Errorf("%w: %d", ErrUnknownLanguage, code)
	}
}
