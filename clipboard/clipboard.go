// Package clipboard copies text to the system clipboard, falling back to the
// terminal's OSC52 sequence where no native clipboard tool is available (for
// example over SSH).
package clipboard

import (
	"fmt"

	atotto "github.com/atotto/clipboard"

	"github.com/andareed/siftly-bhs/logging"
)

var (
	writeNative = atotto.WriteAll
	nativeOK    = func() bool { return !atotto.Unsupported }
	writeOSC52  = copyOSC52
)

// Copy puts text on the clipboard.
func Copy(text string) error {
	if nativeOK() {
		err := writeNative(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes", len(text))
			return nil
		}
		logging.Warnf("Clipboard: native copy failed: %v", err)
	}
	if err := writeOSC52(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
