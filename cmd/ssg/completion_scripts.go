package main

import (
	"fmt"
	"io"
	"strings"
)

var completionShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// scriptWriter keeps the first write error so generators can emit
// line by line and check once.
type scriptWriter struct {
	w   io.Writer
	err error
}

func (s *scriptWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// globExts turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExts(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

// flagNames lists the spellings of a flag, short form first.
func flagNames(f flagDef) []string {
	if f.Short != "" {
		return []string{"-" + f.Short, "--" + f.Long}
	}
	return []string{"--" + f.Long}
}

// generateBash writes a bash completion script.
func generateBash(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	s.printf("# bash completion for ssg\n")
	s.printf("_ssg_completions() {\n")
	s.printf("    local cur prev cmd\n")
	s.printf("    COMPREPLY=()\n")
	s.printf("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	s.printf("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	s.printf("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	s.printf("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	s.printf("        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	s.printf("        return 0\n")
	s.printf("    fi\n\n")
	s.printf("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		switch c.Name {
		case "completion":
			s.printf("        completion)\n")
			s.printf("            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(completionShells, " "))
			s.printf("            ;;\n")
			continue
		case "help":
			s.printf("        help)\n")
			s.printf("            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
			s.printf("            ;;\n")
			continue
		}
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}

		s.printf("        %s)\n", c.Name)
		s.printf("            case \"${prev}\" in\n")
		var all []string
		for _, f := range c.Flags {
			names := flagNames(f)
			all = append(all, names...)
			pattern := strings.Join(names, "|")
			switch f.Type {
			case flagEnum:
				s.printf("                %s)\n", pattern)
				s.printf("                    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.Values, " "))
				s.printf("                    return 0 ;;\n")
			case flagFile:
				s.printf("                %s)\n", pattern)
				s.printf("                    COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n", strings.Join(globExts(f.FileGlob), "|"))
				s.printf("                    return 0 ;;\n")
			case flagDir:
				s.printf("                %s)\n", pattern)
				s.printf("                    COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
				s.printf("                    return 0 ;;\n")
			case flagString, flagInt:
				s.printf("                %s)\n", pattern)
				s.printf("                    return 0 ;;\n")
			}
		}
		s.printf("            esac\n")
		if c.TakesFiles {
			s.printf("            if [[ \"${cur}\" != -* ]]; then\n")
			s.printf("                COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n", strings.Join(globExts(c.FilePattern), "|"))
			s.printf("                return 0\n")
			s.printf("            fi\n")
		}
		s.printf("            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(all, " "))
		s.printf("            ;;\n")
	}

	s.printf("    esac\n")
	s.printf("}\n\n")
	s.printf("shopt -s extglob\n")
	s.printf("complete -F _ssg_completions ssg\n")
	return s.err
}

// zshEscape escapes a description for use inside single quotes and
// _arguments brackets.
func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", `'\''`)
	s = strings.ReplaceAll(s, "[", `\[`)
	return strings.ReplaceAll(s, "]", `\]`)
}

// zshArgSpec returns the _arguments spec of a flag.
func zshArgSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		globs := strings.ReplaceAll(f.FileGlob, ",", " ")
		action = fmt.Sprintf(":file:_files -g \"%s\"", globs)
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = fmt.Sprintf(":%s: ", f.Long)
	}

	if f.Short == "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// generateZsh writes a zsh completion script.
func generateZsh(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	s.printf("#compdef ssg\n\n")
	s.printf("_ssg() {\n")
	s.printf("    local -a commands\n")
	s.printf("    commands=(\n")
	for _, c := range cmds {
		s.printf("        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	s.printf("    )\n\n")
	s.printf("    if (( CURRENT == 2 )); then\n")
	s.printf("        _describe 'command' commands\n")
	s.printf("        return\n")
	s.printf("    fi\n\n")
	s.printf("    case \"$words[2]\" in\n")

	for _, c := range cmds {
		switch c.Name {
		case "completion":
			s.printf("        completion)\n")
			s.printf("            _values 'shell' %s\n", strings.Join(completionShells, " "))
			s.printf("            ;;\n")
			continue
		case "help":
			s.printf("        help)\n")
			s.printf("            _describe 'command' commands\n")
			s.printf("            ;;\n")
			continue
		}
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}

		s.printf("        %s)\n", c.Name)
		s.printf("            _arguments -s")
		for _, f := range c.Flags {
			s.printf(" \\\n                %s", zshArgSpec(f))
		}
		if c.TakesFiles {
			globs := strings.ReplaceAll(c.FilePattern, ",", " ")
			s.printf(" \\\n                '*:file:_files -g \"%s\"'", globs)
		}
		s.printf("\n            ;;\n")
	}

	s.printf("    esac\n")
	s.printf("}\n\n")
	s.printf("compdef _ssg ssg\n")
	return s.err
}

func fishEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

// generateFish writes a fish completion script.
func generateFish(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	s.printf("# fish completion for ssg\n\n")
	s.printf("function __fish_ssg_needs_command\n")
	s.printf("    set -l cmd (commandline -opc)\n")
	s.printf("    test (count $cmd) -eq 1\n")
	s.printf("end\n\n")
	s.printf("function __fish_ssg_using_command\n")
	s.printf("    set -l cmd (commandline -opc)\n")
	s.printf("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	s.printf("end\n\n")
	s.printf("complete -c ssg -f\n\n")

	for _, c := range cmds {
		s.printf("complete -c ssg -n __fish_ssg_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	s.printf("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_ssg_using_command %s'", c.Name)
		switch c.Name {
		case "completion":
			s.printf("complete -c ssg -n %s -a '%s'\n", cond, strings.Join(completionShells, " "))
			continue
		case "help":
			s.printf("complete -c ssg -n %s -a '%s'\n", cond, strings.Join(commandNames(cmds), " "))
			continue
		}

		for _, f := range c.Flags {
			s.printf("complete -c ssg -n %s", cond)
			if f.Short != "" {
				s.printf(" -s %s", f.Short)
			}
			s.printf(" -l %s -d '%s'", f.Long, fishEscape(f.Desc))
			switch f.Type {
			case flagBool:
			case flagEnum:
				s.printf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				s.printf(" -r -F")
			case flagDir:
				s.printf(" -x -a '(__fish_complete_directories)'")
			default:
				s.printf(" -x")
			}
			s.printf("\n")
		}
		if c.TakesFiles {
			s.printf("complete -c ssg -n %s -F\n", cond)
		}
	}
	return s.err
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// generatePowerShell writes a PowerShell completion script.
func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	s.printf("# PowerShell completion for ssg\n")
	s.printf("Register-ArgumentCompleter -Native -CommandName ssg -ScriptBlock {\n")
	s.printf("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	s.printf("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		s.printf("        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	s.printf("    }\n\n")

	s.printf("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		s.printf("        '%s' = [ordered]@{\n", c.Name)
		for _, f := range c.Flags {
			s.printf("            '--%s' = '%s'\n", f.Long, psEscape(f.Desc))
		}
		s.printf("        }\n")
	}
	s.printf("    }\n\n")

	s.printf("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type == flagEnum {
				s.printf("        '--%s' = @('%s')\n", f.Long, strings.Join(f.Values, "', '"))
			}
		}
	}
	s.printf("        'completion' = @('%s')\n", strings.Join(completionShells, "', '"))
	s.printf("    }\n\n")

	s.printf("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	s.printf("    if ($wordToComplete) { $elements = $elements[0..($elements.Count - 2)] }\n\n")
	s.printf("    if ($elements.Count -le 1) {\n")
	s.printf("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	s.printf("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	s.printf("        }\n")
	s.printf("        return\n")
	s.printf("    }\n\n")
	s.printf("    $cmd = $elements[1]\n")
	s.printf("    $prev = $elements[-1]\n")
	s.printf("    if ($values.ContainsKey($prev)) {\n")
	s.printf("        $values[$prev] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	s.printf("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	s.printf("        }\n")
	s.printf("        return\n")
	s.printf("    }\n")
	s.printf("    if ($flags.Contains($cmd)) {\n")
	s.printf("        $flags[$cmd].GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	s.printf("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterName', $_.Value)\n")
	s.printf("        }\n")
	s.printf("    }\n")
	s.printf("}\n")
	return s.err
}
