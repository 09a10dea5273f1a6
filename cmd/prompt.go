package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal reports whether stdin is an interactive terminal.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// promptText prints prompt and reads one trimmed line from the runner's input.
func (r *Runner) promptText(prompt string) (string, error) {
	if err := r.writePlain("%s: ", prompt); err != nil {
		return "", err
	}
	line, err := r.input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when attached to a terminal, or a plain line otherwise.
func (r *Runner) promptPassword(prompt string) (string, error) {
	if !isTerminal() {
		return r.promptText(prompt)
	}

	if err := r.writePlain("%s: ", prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	r.writePlain("\n")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// flagOrPrompt returns the flag value, prompting for it when the flag was not given.
func (r *Runner) flagOrPrompt(value, prompt string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	if secret {
		return r.promptPassword(prompt)
	}
	return r.promptText(prompt)
}
