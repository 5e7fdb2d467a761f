package main

import (
	"os/exec"
	"runtime"
)

// openBrowser hands uri to the platform's default handler (mail client for mailto:)
func openBrowser(uri string) error {
	_, err := startReaped(openCommand(runtime.GOOS, uri))
	return err
}

func openCommand(goos, uri string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	case "darwin":
		return exec.Command("open", uri)
	default:
		return exec.Command("xdg-open", uri)
	}
}

// startReaped starts cmd without blocking on it. The returned channel
// receives the result of Wait once the process exits.
func startReaped(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}
