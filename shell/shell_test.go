package shell

import (
	"errors"
	"strings"
	"testing"
)

func TestScript(t *testing.T) {
	for _, name := range []string{"zsh", "bash"} {
		t.Run(name, func(t *testing.T) {
			s, err := Script(name)
			if err != nil {
				t.Fatalf("Script(%s) failed: %v", name, err)
			}
			for _, want := range []string{"jump --chdir", "j()", "jb()", "jump --browse"} {
				if !strings.Contains(s, want) {
					t.Errorf("%s script missing %q", name, want)
				}
			}
		})
	}

	for _, name := range []string{"fish", "", "../shell.go", "zsh.bak"} {
		if _, err := Script(name); !errors.Is(err, ErrUnsupportedShell) {
			t.Errorf("Script(%q): expected ErrUnsupportedShell, got %v", name, err)
		}
	}
}

func TestSupported(t *testing.T) {
	got := Supported()
	if len(got) != 2 || got[0] != "bash" || got[1] != "zsh" {
		t.Errorf("Supported() = %v, want [bash zsh]", got)
	}
}
