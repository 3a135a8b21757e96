package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "filter")
	Short     string   // short flag without "-" (e.g., "f")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "prefix", "duration")
	IsFile    bool     // true if the flag takes a file path
	Section   string   // fish section comment
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "filter", Short: "f", Help: "Process name prefix", ValueName: "prefix", Section: "Sampling"},
	{Long: "interval", Short: "i", Help: "Delay between passes", Values: []string{"1s", "5s", "10s", "30s", "1m"}, ValueName: "duration", Section: "Sampling"},
	{Long: "once", Help: "Run a single pass and exit", Section: "Sampling"},
	{Long: "concurrency", Help: "Concurrent per-process reads", ValueName: "n", Section: "Sampling"},
	{Long: "tui", Help: "Launch the interactive dashboard", Section: "Output"},
	{Long: "top", Help: "Rows to print in text mode", Values: []string{"10", "25", "50", "0"}, ValueName: "rows", Section: "Output"},
	{Long: "json", Help: "Print snapshots as JSON", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Diagnostics"},
	{Long: "log-file", Help: "Write logs to a file", IsFile: true, ValueName: "file", Section: "Diagnostics"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", ValueName: "addr", Section: "Diagnostics"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file", Section: "Configuration"},
	{Long: "env-file", Help: "Dotenv file", IsFile: true, ValueName: "file", Section: "Configuration"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// fishSections is the order of the section comments in the fish script.
var fishSections = []string{"Sampling", "Output", "Diagnostics", "Configuration", "Completion"}

// GenerateCompletion writes a shell completion script for program.
func GenerateCompletion(out io.Writer, shell, program string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, program)
	case "zsh":
		return generateZshCompletion(out, program)
	case "fish":
		return generateFishCompletion(out, program)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, program)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// identifier turns a program name into a shell function name.
func identifier(program string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(program)
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, program string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var caseBody strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		patterns := flagPatterns(f)
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, patterns...)
		case len(f.Values) > 0:
			fmt.Fprintf(&caseBody, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(patterns, "|"), strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&caseBody, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	fn := identifier(program)
	script := fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[2]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%[3]s"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[2]s_completions %[1]s
`, program, fn, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// flagPatterns returns the spellings of a flag on the command line.
func flagPatterns(f FlagCompletion) []string {
	var p []string
	if f.Long != "" {
		p = append(p, "--"+f.Long)
	}
	if f.Short != "" {
		p = append(p, "-"+f.Short)
	}
	return p
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, program string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	fn := identifier(program)
	script := fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

_%[2]s() {
    _arguments -s \
%[3]s
}

_%[2]s "$@"
`, program, fn, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, program string) error {
	lines := []string{
		"# Fish completion script for " + program,
		"# Add this to ~/.config/fish/completions/" + program + ".fish",
		"",
		"# Disable file completion by default",
		"complete -c " + program + " -f",
		"",
	}
	for _, section := range fishSections {
		lines = append(lines, "# "+section)
		for _, f := range flagRegistry {
			if f.Section == section {
				lines = append(lines, fishCompleteLine(f, program))
			}
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, program string) string {
	parts := []string{"complete -c " + program}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, program string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		for _, name := range flagPatterns(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		if f.IsFile || len(f.Values) == 0 {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = "'" + v + "'"
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	script := fmt.Sprintf(`# PowerShell completion script for %[1]s
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName '%[1]s' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%[2]s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%[3]s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, program, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
