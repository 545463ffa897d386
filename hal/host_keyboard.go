//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, keyQueueLen)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

var hostKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyF1, KeyF1},
	{ebiten.KeyW, KeyW},
}

func (k *hostKeyboard) poll() {
	emit := func(code KeyCode, press bool) {
		select {
		case k.ch <- KeyEvent{Code: code, Press: press}:
		default:
		}
	}

	for _, hk := range hostKeys {
		if inpututil.IsKeyJustPressed(hk.key) {
			emit(hk.code, true)
		}
		if inpututil.IsKeyJustReleased(hk.key) {
			emit(hk.code, false)
		}
	}
}
