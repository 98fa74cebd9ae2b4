// Package browser opens pages of the scoreboard in the operator's default
// browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Commander starts external programs
type Commander interface {
	Start(name string, args ...string) error
}

// RealCommander executes actual commands
type RealCommander struct{}

// Start launches name without waiting for it to exit
func (RealCommander) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

var defaultCommander Commander = RealCommander{}

// Open opens target in the default browser
func Open(target string) error {
	return OpenWithCommander(target, defaultCommander, runtime.GOOS)
}

// OpenWithCommander opens target using commander as if running on goos.
// Only absolute http(s) URLs are accepted.
func OpenWithCommander(target string, commander Commander, goos string) error {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) url", target)
	}

	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return commander.Start("xdg-open", target)
	case "darwin":
		return commander.Start("open", target)
	case "windows":
		return commander.Start("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", goos)
	}
}
