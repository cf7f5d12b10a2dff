// Package browser opens story links in the user's default browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrNoURL is returned for stories without a link, such as Ask HN posts.
var ErrNoURL = errors.New("story has no url")

// Validate accepts only absolute http and https URLs.
func Validate(rawURL string) error {
	if rawURL == "" {
		return ErrNoURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open URL without host: %q", rawURL)
	}
	return nil
}

// Command returns the platform command that opens rawURL.
func Command(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// rundll32 avoids cmd /c start shell interpretation
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}

// Opener launches URLs through a start function, replaceable in tests.
type Opener struct {
	start func(name string, args ...string) error
}

// New returns an Opener that starts the platform command without waiting.
func New() *Opener {
	return &Opener{start: func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	}}
}

// Open validates rawURL and opens it.
func (o *Opener) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	name, args := Command(runtime.GOOS, rawURL)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("opening %s: %w", rawURL, err)
	}
	return nil
}

// Open opens rawURL with the default Opener.
func Open(rawURL string) error {
	return New().Open(rawURL)
}
