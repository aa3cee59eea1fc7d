// Package audioout plays a block source on the system audio device.
//
// Live backends (oto, ebiten) are excluded with the headless build tag, which
// leaves only the null backend.
package audioout
