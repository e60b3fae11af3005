package rasterize

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// platformBrowserNames lists the executable name(s) to try in "./" before
// falling back to the system PATH: a platform-specific filename checked next
// to the binary first, then the system search path, the same order a
// dlopen'd shared library would be resolved in — transposed here to a
// subprocess binary since the rasterizing capability is a separate browser
// process rather than a loadable library.
func platformBrowserNames() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"chrome-headless-shell.exe", "chrome.exe", "msedge.exe"}
	case "darwin":
		return []string{"chrome-headless-shell", "Google Chrome.app/Contents/MacOS/Google Chrome"}
	default:
		return []string{"chrome-headless-shell", "google-chrome", "chromium", "chromium-browser"}
	}
}

// pathBrowserNames lists the names tried against the system PATH once the
// local lookup has failed.
func pathBrowserNames() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"chrome.exe", "msedge.exe"}
	default:
		return []string{"google-chrome", "chromium", "chromium-browser", "chrome"}
	}
}

// findBrowserBinary resolves the Chromium/Chrome executable to launch,
// trying a platform-specific name in the current directory first and then
// the system PATH. An explicit override (from config or the
// RASTERPRESS_CHROME_BIN environment variable) always wins.
func findBrowserBinary(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return override, nil
		}
		return "", fmt.Errorf("rasterize: configured chrome binary %q not found", override)
	}
	if env := os.Getenv("RASTERPRESS_CHROME_BIN"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env, nil
		}
	}

	for _, name := range platformBrowserNames() {
		candidate := filepath.Join(".", name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	for _, name := range pathBrowserNames() {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("rasterize: no Chromium/Chrome executable found in ./ or PATH")
}
