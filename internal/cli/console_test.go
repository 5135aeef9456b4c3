package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"healthbot/internal/event"
)

func TestParseConsoleLine(t *testing.T) {
	tests := []struct {
		line     string
		kind     event.Kind
		command  string
		args     []string
		text     string
		callback string
	}{
		{line: "/start", kind: event.KindCommand, command: "start"},
		{line: "/ban 42", kind: event.KindCommand, command: "ban", args: []string{"42"}},
		{line: "@main_menu", kind: event.KindCallback, callback: "main_menu"},
		{line: "hello there", kind: event.KindText, text: "hello there"},
		{line: "/", kind: event.KindText, text: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := parseConsoleLine(1, tt.line)
			assert.Equal(t, int64(1), got.AccountID)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.command, got.Command)
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.callback, got.Callback)
			if len(tt.args) == 0 {
				assert.Empty(t, got.Args)
			} else {
				assert.Equal(t, tt.args, got.Args)
			}
		})
	}
}
