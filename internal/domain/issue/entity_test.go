package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusConfirmed, StatusResolved, true},
		{StatusPending, StatusResolved, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusResolved, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusPending, StatusPending, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestUpdateStatusRequest_Validate(t *testing.T) {
	req := UpdateStatusRequest{ID: "x", Status: StatusConfirmed}
	assert.NoError(t, req.Validate())

	req = UpdateStatusRequest{Status: "voided"}
	err := req.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "id")
}
