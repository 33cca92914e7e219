package clipboard

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/andareed/siftly-bhs/logging"
)

var ErrOSC52Unsupported = errors.New("clipboard unavailable (OSC52 unsupported by terminal)")

func copyOSC52(text string) error {
	if !osc52Supported(os.Getenv("TERM"), os.Stdout) {
		logging.Warnf("Clipboard: OSC52 unavailable (stdout not TTY or TERM=dumb)")
		return ErrOSC52Unsupported
	}
	if err := writeOSC52Seq(os.Stdout, text); err != nil {
		logging.Warnf("Clipboard: OSC52 write failed: %v", err)
		return err
	}
	logging.Infof("Clipboard: copied via OSC52")
	return nil
}

func writeOSC52Seq(w io.Writer, text string) error {
	_, err := osc52.New(text).WriteTo(w)
	return err
}

func osc52Supported(term string, out *os.File) bool {
	if term == "" || strings.EqualFold(term, "dumb") {
		return false
	}
	return isTTY(out)
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
