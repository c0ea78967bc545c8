// Command prnlink talks to a PRN-family 3D printer over a serial port:
// it prints machine information or streams a G-code file to the device.
//
// Usage:
//
//	prnlink [flags] <gcode-path>
//	prnlink [flags] --info
//	prnlink --list-ports
//
// Any protocol or transport error terminates the process with exit code 1
// after a single diagnostic line.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.bug.st/serial"

	"github.com/prnlink/go-prnlink/logger"
	"github.com/prnlink/go-prnlink/printer"
	"github.com/prnlink/go-prnlink/progress"
	"github.com/prnlink/go-prnlink/serialport"
)

// action is the single operation requested by the command line. The info
// and send-file modes are mutually exclusive by construction.
type action int

const (
	actionSendFile action = iota
	actionInfo
	actionListPorts
)

type options struct {
	action    action
	portPath  string
	gcodePath string
	debug     bool
}

func defaultPortPath() string {
	if runtime.GOOS == "darwin" {
		return "/dev/tty.usbmodem1421"
	}

	return "/dev/ttyACM0"
}

func parseArgs(args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("prnlink", flag.ContinueOnError)
	info := fs.Bool("info", false, "query and print machine information instead of sending a file")
	listPorts := fs.Bool("list-ports", false, "list candidate serial ports and exit")
	fs.StringVar(&opts.portPath, "port", defaultPortPath(), "serial port device path")
	fs.BoolVar(&opts.debug, "debug", false, "trace every byte sent and received")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: prnlink [flags] <gcode-path> | --info | --list-ports\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case *listPorts:
		opts.action = actionListPorts
	case *info:
		if fs.NArg() != 0 {
			return nil, fmt.Errorf("--info does not take a file argument")
		}
		opts.action = actionInfo
	default:
		if fs.NArg() != 1 {
			return nil, fmt.Errorf("exactly one G-code path is required (or --info)")
		}
		opts.action = actionSendFile
		opts.gcodePath = fs.Arg(0)
	}

	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "prnlink:", err)
		os.Exit(2)
	}

	if opts.debug {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "prnlink:", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	if opts.action == actionListPorts {
		return listPorts()
	}

	tr, err := serialport.Open(opts.portPath)
	if err != nil {
		return err
	}

	sess, err := printer.NewSession(tr)
	if err != nil {
		_ = tr.Close()
		return err
	}
	defer sess.Close()

	switch opts.action {
	case actionInfo:
		return printInfo(sess)
	default:
		return sendFile(sess, opts.gcodePath)
	}
}

func listPorts() error {
	ports, err := serial.GetPortsList()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}

	for _, p := range ports {
		fmt.Println(p)
	}

	return nil
}

func printInfo(sess *printer.Session) error {
	fmt.Printf("firmware version: %s\n", sess.FirmwareVersion())
	fmt.Printf("serial number:    %s\n", sess.SerialNumber())

	mins, err := sess.Lifetime()
	if err != nil {
		return err
	}
	fmt.Printf("lifetime:         %d minutes\n", mins)

	fil, err := sess.Filament()
	if err != nil {
		return err
	}
	fmt.Printf("filament:         %d/%d mm remaining\n", fil.RemainingMM, fil.CapacityMM)
	fmt.Printf("target temps:     extruder %d°C, bed %d°C\n", fil.ExtruderTempTarget, fil.BedTempTarget)

	st, err := sess.Status()
	if err != nil {
		return err
	}
	fmt.Printf("state:            %s (%d%%)\n", st.PrintState, st.PercentComplete)
	fmt.Printf("work time:        %d of an estimated %d minutes\n", st.WorkTimeMinutes, st.EstimatedMinutes)
	fmt.Printf("temperatures:     extruder %d°C, bed %d°C\n", st.ExtruderTemp, st.BedTemp)
	fmt.Printf("language:         %s\n", st.Language)

	return nil
}

func sendFile(sess *printer.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bar := progress.NewBar(os.Stdout)
	defer bar.Finish()

	return sess.SendFile(f, bar.Sink())
}
