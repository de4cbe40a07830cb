// Package shell holds the integration scripts printed by jump --shell.
package shell

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed jump.zsh jump.bash
var scripts embed.FS

// ErrUnsupportedShell is returned for shells without a script.
var ErrUnsupportedShell = errors.New("unsupported shell")

// Script returns the integration script for the named shell.
func Script(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/.") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedShell, name)
	}
	data, err := scripts.ReadFile("jump." + name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedShell, name)
	}
	return string(data), nil
}

// Supported lists the shells Script knows about.
func Supported() []string {
	entries, _ := scripts.ReadDir(".")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimPrefix(e.Name(), "jump."))
	}
	sort.Strings(names)
	return names
}
