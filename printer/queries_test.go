package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/prnlink/go-prnlink/lineproto"
)

func TestSession_Lifetime(t *testing.T) {
	s, port := newTestSession(t, "WORK_COUNT:42\nLIFETIME:123456\n")

	mins, err := s.Lifetime()
	require.NoError(t, err)
	assert.Equal(t, int64(123456), mins)

	last := port.writes[len(port.writes)-1]
	assert.Equal(t, byte(0x04), last[len(last)-1])
}

func TestSession_Filament(t *testing.T) {
	s, port := newTestSession(t,
		"5A,41,DEADBEEF,C0FFEE,120000,57890,200,60,0,1,2,3\n")

	info, err := s.Filament()
	require.NoError(t, err)
	assert.Equal(t, int64(120000), info.CapacityMM)
	assert.Equal(t, int64(57890), info.RemainingMM)
	assert.Equal(t, int64(200), info.ExtruderTempTarget)
	assert.Equal(t, int64(60), info.BedTempTarget)

	last := port.writes[len(port.writes)-1]
	assert.Equal(t, byte(0x05), last[len(last)-1])
}

func TestSession_Status(t *testing.T) {
	s, _ := newTestSession(t,
		"WORK_PARSENT:42\nWORK_TIME:10\nEST_TIME:20\nET0:200\nBT:60\nMCH_STATE:27\nPRN_STATE:2\nLANG:0\n")

	info, err := s.Status()
	require.NoError(t, err)
	assert.Equal(t, &StatusInfo{
		PercentComplete:  42,
		WorkTimeMinutes:  10,
		EstimatedMinutes: 20,
		ExtruderTemp:     200,
		BedTemp:          60,
		PrintState:       StateBuilding,
		Language:         language.English,
	}, info)
}

func TestSession_Status_NoPrintState(t *testing.T) {
	// The state line is omitted entirely; the next line is already the
	// language field and must not be swallowed by the optional match.
	s, _ := newTestSession(t,
		"WORK_PARSENT:0\nWORK_TIME:0\nEST_TIME:0\nET0:25\nBT:24\nMCH_STATE:1\nLANG:1\n")

	info, err := s.Status()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, info.PrintState)
	assert.Equal(t, language.Japanese, info.Language)
}

func TestSession_Status_UnknownState(t *testing.T) {
	s, _ := newTestSession(t,
		"WORK_PARSENT:1\nWORK_TIME:1\nEST_TIME:1\nET0:1\nBT:1\nMCH_STATE:1\nPRN_STATE:9000\nLANG:0\n")

	info, err := s.Status()
	require.NoError(t, err)
	assert.Equal(t, PrintState("unknown(9000)"), info.PrintState)
}

func TestSession_Status_UnknownLanguage(t *testing.T) {
	s, _ := newTestSession(t,
		"WORK_PARSENT:1\nWORK_TIME:1\nEST_TIME:1\nET0:1\nBT:1\nMCH_STATE:1\nLANG:7\n")

	_, err := s.Status()
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestSession_Status_Mismatch(t *testing.T) {
	s, _ := newTestSession(t, "GARBAGE\n")

	_, err := s.Status()
	require.Error(t, err)

	var mm *lineproto.MismatchError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, "WORK_PARSENT", mm.Expected.Name())
}

func TestPrintStateFromCode(t *testing.T) {
	tests := []struct {
		code int64
		want PrintState
	}{
		{1, StateHeating},
		{2, StateBuilding},
		{5, StateCooling},
		{7, StateLoweringBed},
		{571449, StateComplete},
		{27, PrintState("unknown(27)")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PrintStateFromCode(tt.code))
	}
}
