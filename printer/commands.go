package printer

import "github.com/prnlink/go-prnlink/lineproto"

// commandPreamble wakes the controller before the selector byte. The
// firmware ignores runs of 0xFF outside a command frame, so a stale or
// half-received preamble from an interrupted run is harmless.
var commandPreamble = [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// Command selectors.
const (
	selMachineInfo  byte = 0x01
	selSendFirmware byte = 0x02
	selSendFile     byte = 0x03
	selLifetime     byte = 0x04
	selFilament1    byte = 0x05
	// selFilament2 (0x06) exists in the protocol but is permanently
	// disabled: querying the second cartridge disrupts the job that follows
	// and raises an unrelated prompt on the LCD. No operation may ever send
	// it. The constant stays here so nobody reassigns the selector.
	selFilament2 byte = 0x06
	selStatus    byte = 0x07
)

// command builds the wire form of a selector: preamble plus selector byte.
func command(selector byte) []byte {
	return append(commandPreamble[:], selector)
}

// Response grammars, in the order the device emits them.
var (
	grStart        = lineproto.MustGrammar("start", `^start$`)
	grToken        = lineproto.MustGrammar("token", `^[0-9A-Za-z]+$`)
	grVersion      = lineproto.MustGrammar("VERSION", `^VERSION:(.+)$`)
	grSerialNumber = lineproto.MustGrammar("SN", `^SN:(.+)$`)
	grProtocolVer  = lineproto.MustGrammar("protocol-version", `^2$`)

	grWorkCount = lineproto.MustGrammar("WORK_COUNT", `^WORK_COUNT:(\d+)$`)
	grLifetime  = lineproto.MustGrammar("LIFETIME", `^LIFETIME:(\d+)$`)

	// Twelve comma-separated fields: two 2-hex-digit, two variable-length
	// hex, then eight decimal. Only four of the decimal fields have a known
	// meaning and are surfaced.
	grFilament = lineproto.MustGrammar("filament",
		`^([0-9A-Fa-f]{2}),([0-9A-Fa-f]{2}),([0-9A-Fa-f]+),([0-9A-Fa-f]+),`+
			`(\d+),(\d+),(\d+),(\d+),(\d+),(\d+),(\d+),(\d+)$`)

	grPercent      = lineproto.MustGrammar("WORK_PARSENT", `^WORK_PARSENT:(\d+)$`)
	grWorkTime     = lineproto.MustGrammar("WORK_TIME", `^WORK_TIME:(\d+)$`)
	grEstTime      = lineproto.MustGrammar("EST_TIME", `^EST_TIME:(\d+)$`)
	grExtruderTemp = lineproto.MustGrammar("ET0", `^ET0:(\d+)$`)
	grBedTemp      = lineproto.MustGrammar("BT", `^BT:(\d+)$`)
	grMachState    = lineproto.MustGrammar("MCH_STATE", `^MCH_STATE:(\d+)$`)
	grLanguage     = lineproto.MustGrammar("LANG", `^LANG:(\d+)$`)
)
