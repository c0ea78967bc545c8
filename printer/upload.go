package printer

import (
	"io"

	"github.com/prnlink/go-prnlink/progress"
	"github.com/prnlink/go-prnlink/transfer"
)

// SendFile streams a G-code file to the printer using the framed transfer
// protocol. src is read twice (length pass, then streaming pass), so it
// must be seekable. sink may be nil.
//
// The printer shows a confirmation prompt on its display before accepting
// the transfer; if the operator has not confirmed, the engine fails with
// transfer.ErrNotReady.
func (s *Session) SendFile(src io.ReadSeeker, sink progress.Sink) error {
	eng := transfer.NewEngine(s.client,
		transfer.WithProgress(sink),
		transfer.WithLogger(s.logger),
	)

	return eng.Send(command(selSendFile), src)
}

// SendFirmware streams a firmware image to the printer. The framing is the
// same as for G-code files; only the initiating command differs.
func (s *Session) SendFirmware(src io.ReadSeeker, sink progress.Sink) error {
	eng := transfer.NewEngine(s.client,
		transfer.WithProgress(sink),
		transfer.WithLogger(s.logger),
	)

	return eng.Send(command(selSendFirmware), src)
}
