package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	r := Text(1, "Pick one:").WithActions(
		Action{Label: "Add", Event: "add"},
		Action{Label: "View", Event: "view"},
	)

	assert.Equal(t, "Pick one:\n[Add] -> add\n[View] -> view\n", r.Render())
}

func TestRender_NoActions(t *testing.T) {
	assert.Equal(t, "Done.\n", Text(1, "Done.").Render())
}

func TestTextf(t *testing.T) {
	r := Textf(7, "Welcome, %s!", "Anna")
	assert.Equal(t, int64(7), r.AccountID)
	assert.Equal(t, "Welcome, Anna!", r.Text)
}
