package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

func TestStatusGuards(t *testing.T) {
	cases := []struct {
		name  string
		check func(Status) error
		from  Status
		valid bool
	}{
		{"call from waiting", CanCall, StatusWaiting, true},
		{"call from up_next", CanCall, StatusUpNext, true},
		{"call from in_progress", CanCall, StatusInProgress, false},
		{"call from done", CanCall, StatusDone, false},
		{"call from cancelled", CanCall, StatusCancelled, false},

		{"complete from in_progress", CanComplete, StatusInProgress, true},
		{"complete from up_next", CanComplete, StatusUpNext, false},
		{"complete from waiting", CanComplete, StatusWaiting, false},
		{"complete from done", CanComplete, StatusDone, false},

		{"cancel from waiting", CanCancel, StatusWaiting, true},
		{"cancel from up_next", CanCancel, StatusUpNext, true},
		{"cancel from in_progress", CanCancel, StatusInProgress, false},
		{"cancel from cancelled", CanCancel, StatusCancelled, false},

		{"delete from waiting", CanDelete, StatusWaiting, true},
		{"delete from up_next", CanDelete, StatusUpNext, true},
		{"delete from in_progress", CanDelete, StatusInProgress, false},

		{"acknowledge from up_next", CanAcknowledge, StatusUpNext, true},
		{"acknowledge from waiting", CanAcknowledge, StatusWaiting, false},
		{"acknowledge from in_progress", CanAcknowledge, StatusInProgress, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.from)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			}
		})
	}
}

func TestActiveStatuses(t *testing.T) {
	assert.Equal(t, []string{"waiting", "up_next", "in_progress"}, ActiveStatuses())

	assert.True(t, IsActive(StatusWaiting))
	assert.True(t, IsActive(StatusUpNext))
	assert.True(t, IsActive(StatusInProgress))
	assert.False(t, IsActive(StatusDone))
	assert.False(t, IsActive(StatusCancelled))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusWaiting, InitialStatus())
}
