package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share one command
	names := make(map[*Command][]string)
	for name, command := range commands {
		if command == nil {
			continue
		}
		names[command] = append(names[command], name)
	}
	var lines []string
	byLine := make(map[string]*Command)
	for command, ns := range names {
		slices.Sort(ns)
		line := strings.Join(ns, ", ")
		lines = append(lines, line)
		byLine[line] = command
	}
	slices.Sort(lines)
	indent := strings.Repeat("  ", depth)
	for _, line := range lines {
		command := byLine[line]
		if command.Description != "" {
			fmt.Fprintf(w, "%s%s\t%s\n", indent, line, command.Description)
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, line)
		}
		if len(command.Subs) > 0 {
			writeCommands(w, maps.Clone(command.Subs), depth+1)
		}
	}
}
