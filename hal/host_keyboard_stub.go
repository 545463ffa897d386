//go:build !cgo

package hal

// hostKeyboard never produces events without the window backend. Its channel
// stays open and empty so readers simply see no input.
type hostKeyboard struct{ events chan KeyEvent }

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{events: make(chan KeyEvent, keyQueueLen)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.events }

func (*hostKeyboard) poll() {}
