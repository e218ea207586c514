package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestPrompter_Ask(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  string
	}{
		{"answer", "Arduino Repair\n", "", "Arduino Repair"},
		{"default on empty", "\n", "hourly", "hourly"},
		{"answer overrides default", "fixed\n", "hourly", "fixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input)
			got, err := p.Ask(context.Background(), "Title", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Title")
		})
	}
}

func TestPrompter_AskRequired(t *testing.T) {
	p, out := newTestPrompter("\n\nESP32\n")
	got, err := p.AskRequired(context.Background(), "Name")
	require.NoError(t, err)
	assert.Equal(t, "ESP32", got)
	assert.Equal(t, 2, strings.Count(out.String(), "Name is required."))
}

func TestPrompter_AskFloat(t *testing.T) {
	p, out := newTestPrompter("cheap\n1,500\n")
	got, err := p.AskFloat(context.Background(), "Price", 0)
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, got, 0.001)
	assert.Contains(t, out.String(), "Please enter a number.")

	p, _ = newTestPrompter("\n")
	got, err = p.AskFloat(context.Background(), "Service area", 10)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 0.001)
}

func TestPrompter_AskInt(t *testing.T) {
	p, _ := newTestPrompter("2.5\n3\n")
	got, err := p.AskInt(context.Background(), "Stock", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestPrompter_Choose(t *testing.T) {
	p, out := newTestPrompter("daily\nFIXED\n")
	got, err := p.Choose(context.Background(), "Pricing", []string{"hourly", "fixed"}, "hourly")
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)
	assert.Contains(t, out.String(), "Invalid choice")
}

func TestPrompter_Confirm(t *testing.T) {
	p, _ := newTestPrompter("y\n\n")
	ok, err := p.Confirm(context.Background(), "Delete?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm(context.Background(), "Delete?", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrompter_AskSecretWithoutTerminal(t *testing.T) {
	p, _ := newTestPrompter("hunter2\n")
	got, err := p.AskSecret(context.Background(), "Password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestPrompter_InputClosed(t *testing.T) {
	p, _ := newTestPrompter("")
	_, err := p.AskRequired(context.Background(), "Name")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestPrompter_Cancelled(t *testing.T) {
	p, _ := newTestPrompter("ignored\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ask(ctx, "Title", "")
	assert.ErrorIs(t, err, ErrInputCanceled)
}
