package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdioSelect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr string
	}{
		{name: "number", input: "2\n", want: 1},
		{name: "default on empty", input: "\n", want: 2},
		{name: "no trailing newline", input: "1", want: 0},
		{name: "eof", input: "", wantErr: "cancelled"},
		{name: "not a number", input: "dev\n", wantErr: "invalid selection"},
		{name: "out of range", input: "9\n", wantErr: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := NewStdio(strings.NewReader(tt.input), &out)
			got, err := s.Select(context.Background(), "Choose a branch", []string{"dev", "feat/x", "main"}, 2)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Choose a branch:")
			assert.Contains(t, out.String(), "> [3] main")
			assert.Contains(t, out.String(), "  [1] dev")
		})
	}
}

func TestStdioSelectEmpty(t *testing.T) {
	_, err := NewStdio(strings.NewReader("1\n"), &bytes.Buffer{}).Select(context.Background(), "x", nil, 0)
	assert.ErrorIs(t, err, errNoItems)
}

func TestStdioSelectThenConfirmShareInput(t *testing.T) {
	var out bytes.Buffer
	s := NewStdio(strings.NewReader("2\nn\n"), &out)

	idx, err := s.Select(context.Background(), "Choose a branch", []string{"a", "b"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	ok, err := s.Confirm(context.Background(), "Switch to branch: b ?", true)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Switch to branch: b ? [Y/n]: ")
}

func TestStdioConfirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{input: "\n", defaultYes: true, want: true},
		{input: "\n", defaultYes: false, want: false},
		{input: "YES\n", want: true},
		{input: "no\n", defaultYes: true, want: false},
		{input: "perhaps\n", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			got, err := NewStdio(strings.NewReader(tt.input), &bytes.Buffer{}).Confirm(context.Background(), "Go?", tt.defaultYes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStdioHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStdio(strings.NewReader("1\n"), &bytes.Buffer{}).Select(ctx, "x", []string{"a"}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
