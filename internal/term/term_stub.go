//go:build !linux

package term

import "os"

// IsTerminal always reports false off Linux; progress output stays off.
func IsTerminal(f *os.File) bool { return false }
