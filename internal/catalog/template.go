package catalog

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Template describes how to provision an environment: a base image, the
// packages to install and the shell lines to run afterwards.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BaseImage   string   `json:"base_image"`
	Packages    []string `json:"packages"`
	SetupScript []string `json:"setup_script"`
	Custom      bool     `json:"custom"`
}

// Validate checks required fields and that every setup line is a
// syntactically complete shell command.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template missing required field: name")
	}
	if t.Description == "" {
		return fmt.Errorf("template missing required field: description")
	}
	if t.BaseImage == "" {
		return fmt.Errorf("template missing required field: base_image")
	}

	for i, line := range t.SetupScript {
		if err := checkLine(line); err != nil {
			return fmt.Errorf("setup_script line %d: %w", i+1, err)
		}
	}
	return nil
}

// checkLine parses line as a standalone bash command. Each line runs in
// its own `bash -c`, so constructs spanning lines are rejected here
// rather than failing halfway through provisioning.
func checkLine(line string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(line), ""); err != nil {
		return err
	}
	return nil
}

// ScriptLines splits a setup script into its non-blank lines, trimmed.
func ScriptLines(script string) []string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
