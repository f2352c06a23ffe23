package audit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Log(ev Event) error {
	args := m.Called(ev)
	return args.Error(0)
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	first := &MockSink{}
	second := &MockSink{}

	id := uint(7)
	ev := Event{MasterID: 1, Action: "booking_created", Entity: "booking", EntityID: &id}

	first.On("Log", ev).Return(nil).Once()
	second.On("Log", ev).Return(errors.New("broker down")).Once()

	d := NewDispatcher(first, second)
	d.Dispatch(ev)
	d.Close()

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher()
	d.Close()
	d.Close()
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}
