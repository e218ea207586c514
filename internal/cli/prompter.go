package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter asks for form fields on the terminal when they were not given
// as flags.
type Prompter struct {
	writer   io.Writer
	reader   *LineReader
	secretFD int
}

// NewPrompter creates a prompter reading from reader and writing prompts to
// writer. Secrets are read without echo when reader is a terminal.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	fd := -1
	if f, ok := reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Prompter{
		reader:   NewLineReader(reader),
		writer:   writer,
		secretFD: fd,
	}
}

// Ask prompts for a value; an empty answer returns def.
func (p *Prompter) Ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", label, def)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskRequired prompts until a non-empty value is entered.
func (p *Prompter) AskRequired(ctx context.Context, label string) (string, error) {
	for {
		answer, err := p.Ask(ctx, label, "")
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		p.complain(label + " is required.")
	}
}

// AskFloat prompts until a number is entered; an empty answer returns def.
func (p *Prompter) AskFloat(ctx context.Context, label string, def float64) (float64, error) {
	for {
		answer, err := p.Ask(ctx, label, strconv.FormatFloat(def, 'f', -1, 64))
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(answer, ",", ""), 64)
		if err == nil {
			return v, nil
		}
		p.complain("Please enter a number.")
	}
}

// AskInt prompts until a whole number is entered; an empty answer returns def.
func (p *Prompter) AskInt(ctx context.Context, label string, def int) (int, error) {
	for {
		answer, err := p.Ask(ctx, label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(answer)
		if err == nil {
			return v, nil
		}
		p.complain("Please enter a whole number.")
	}
}

// Choose prompts until one of options is entered (case-insensitive). An
// empty answer returns def.
func (p *Prompter) Choose(ctx context.Context, label string, options []string, def string) (string, error) {
	for {
		answer, err := p.Ask(ctx, fmt.Sprintf("%s (%s)", label, strings.Join(options, "/")), def)
		if err != nil {
			return "", err
		}
		for _, opt := range options {
			if strings.EqualFold(answer, opt) {
				return opt, nil
			}
		}
		p.complain("Invalid choice. Please try again.")
	}
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	d := "n"
	if def {
		d = "y"
	}
	answer, err := p.Choose(ctx, question, []string{"y", "n"}, d)
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// AskSecret prompts for a password. Input is hidden on a terminal.
func (p *Prompter) AskSecret(ctx context.Context, label string) (string, error) {
	if p.secretFD < 0 {
		return p.AskRequired(ctx, label)
	}

	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	secret, err := term.ReadPassword(p.secretFD)
	if _, werr := fmt.Fprintln(p.writer); werr != nil {
		slog.Warn("Failed to write newline after password", "error", werr)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}

func (p *Prompter) complain(msg string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(msg)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}
