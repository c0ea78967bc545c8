package printer

import (
	"golang.org/x/text/language"

	"github.com/prnlink/go-prnlink/lineproto"
)

// FilamentInfo describes the primary filament cartridge. Temperatures are
// the cartridge's target values, not current readings.
type FilamentInfo struct {
	CapacityMM         int64
	RemainingMM        int64
	ExtruderTempTarget int64 // °C
	BedTempTarget      int64 // °C
}

// StatusInfo is the result of a status query. Times are in minutes as
// reported by the device.
type StatusInfo struct {
	PercentComplete  int64
	WorkTimeMinutes  int64
	EstimatedMinutes int64
	ExtruderTemp     int64 // °C
	BedTemp          int64 // °C
	PrintState       PrintState
	Language         language.Tag
}

// Lifetime returns the machine's cumulative lifetime in minutes.
func (s *Session) Lifetime() (int64, error) {
	if err := s.client.Send(command(selLifetime)); err != nil {
		return 0, err
	}

	// The first counter (work count) precedes the lifetime value and is
	// not surfaced.
	if _, err := s.client.Match(grWorkCount); err != nil {
		return 0, err
	}

	caps, err := s.client.Match(grLifetime)
	if err != nil {
		return 0, err
	}

	return caps.Int(0)
}

// Filament queries the primary filament cartridge. The second cartridge
// slot cannot be queried; see the selector catalog.
func (s *Session) Filament() (*FilamentInfo, error) {
	if err := s.client.Send(command(selFilament1)); err != nil {
		return nil, err
	}

	caps, err := s.client.Match(grFilament)
	if err != nil {
		return nil, err
	}

	// Captures 0-3 are hex identifiers with no known meaning; 8-11 are
	// decimal fields whose purpose is undocumented. Only 4-7 are surfaced.
	info := &FilamentInfo{}
	fields := []struct {
		idx int
		dst *int64
	}{
		{4, &info.CapacityMM},
		{5, &info.RemainingMM},
		{6, &info.ExtruderTempTarget},
		{7, &info.BedTempTarget},
	}
	for _, f := range fields {
		v, err := caps.Int(f.idx)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	return info, nil
}

// Status queries the current job status. The machine-state field is read
// to keep the response stream aligned but has no known interpretation and
// is not surfaced. When the device omits the print-state line the job is
// idle.
func (s *Session) Status() (*StatusInfo, error) {
	if err := s.client.Send(command(selStatus)); err != nil {
		return nil, err
	}

	info := &StatusInfo{}
	required := []struct {
		gr  lineproto.Grammar
		dst *int64
	}{
		{grPercent, &info.PercentComplete},
		{grWorkTime, &info.WorkTimeMinutes},
		{grEstTime, &info.EstimatedMinutes},
		{grExtruderTemp, &info.ExtruderTemp},
		{grBedTemp, &info.BedTemp},
		{grMachState, nil},
	}
	for _, f := range required {
		caps, err := s.client.Match(f.gr)
		if err != nil {
			return nil, err
		}
		if f.dst == nil {
			continue
		}
		v, err := caps.Int(0)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	info.PrintState = StateIdle
	if caps, ok, err := s.client.MatchOptional(lineproto.OutOfBandStatus); err != nil {
		return nil, err
	} else if ok {
		code, err := caps.Int(0)
		if err != nil {
			return nil, err
		}
		info.PrintState = PrintStateFromCode(code)
	}

	caps, err := s.client.Match(grLanguage)
	if err != nil {
		return nil, err
	}
	code, err := caps.Int(0)
	if err != nil {
		return nil, err
	}
	info.Language, err = languageFromCode(code)
	if err != nil {
		return nil, err
	}

	return info, nil
}
