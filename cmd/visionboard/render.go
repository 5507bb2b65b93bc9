package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
	ansiGreen = "\x1b[32m"
	ansiDim   = "\x1b[2m"
)

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func renderField(label, value string) string {
	return fmt.Sprintf("  %-18s %s", label+":", value)
}

func renderCheckbox(done bool, label string, colorize bool) string {
	mark := "[ ]"
	if done {
		mark = "[x]"
		if colorize {
			mark = ansiGreen + mark + ansiReset
		}
	}
	return fmt.Sprintf("  %s %s", mark, label)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
