package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Offset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 0, Size: 20}.offset())
	assert.Equal(t, 0, ListParams{Page: 1, Size: 20}.offset())
	assert.Equal(t, 40, ListParams{Page: 3, Size: 20}.offset())
}

func TestEventParams_Args(t *testing.T) {
	et := EventTypeTrainingFinished
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	args := EventParams{Type: &et, WorkoutID: "push-day", From: &from}.args()

	assert.Len(t, args, 4)
	assert.Equal(t, &et, args[0])
	assert.Equal(t, "push-day", args[1])
	assert.Equal(t, &from, args[2])
	assert.Nil(t, args[3].(*time.Time))
}
