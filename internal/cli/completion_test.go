package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _handlewatch_completions handlewatch", "--filter", "-f", `compgen -W "1s 5s 10s 30s 1m"`, "compgen -f"}},
		{"zsh", []string{"#compdef handlewatch", "'(-i --interval)'{-i,--interval}", "--config[YAML configuration file]:file:_files"}},
		{"fish", []string{"complete -c handlewatch -f", "# Sampling", "-l once", "-l log-file -d 'Write logs to a file' -rF"}},
		{"powershell", []string{"Register-ArgumentCompleter -CommandName 'handlewatch'", "'--log-level'", "@{Name = '-f'"}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, "handlewatch"); err != nil {
				t.Fatalf("GenerateCompletion(%q) error: %v", tt.shell, err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("%s script missing %q", tt.shell, s)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", "handlewatch"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistrySections(t *testing.T) {
	t.Parallel()
	known := map[string]bool{}
	for _, s := range fishSections {
		known[s] = true
	}
	for _, f := range flagRegistry {
		if !known[f.Section] {
			t.Errorf("flag %q has unknown section %q", f.Long, f.Section)
		}
		if f.Long == "" {
			t.Errorf("flag %+v needs a long name", f)
		}
	}
}
