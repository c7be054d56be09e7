package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Error("Please select a size")
	r.Success("Added 1 Lamp(s) to cart!")

	msgs := r.Messages()
	assert.Equal(t, []Message{
		{Level: LevelError, Message: "Please select a size"},
		{Level: LevelSuccess, Message: "Added 1 Lamp(s) to cart!"},
	}, msgs)

	msgs[0].Message = "changed"
	assert.Equal(t, "Please select a size", r.Messages()[0].Message)
}
