package sms

import "errors"

var (
	// ErrDolphinNotRunning indicates no emulator process was found.
	ErrDolphinNotRunning = errors.New("sms: Dolphin is not running")

	// ErrNoGameRunning indicates the emulator is running without a game.
	ErrNoGameRunning = errors.New("sms: Dolphin is found, but no game is running")

	// ErrSMSNotRunning indicates the running game is not a known release.
	ErrSMSNotRunning = errors.New("sms: SMS is not running")
)
