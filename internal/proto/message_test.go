package proto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInbound(t *testing.T) {
	in, err := NewInbound(InboundTypeNewItem, map[string]string{"item": "bread"})
	require.NoError(t, err)
	assert.Equal(t, InboundTypeNewItem, in.Type)

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"new_item","data":{"item":"bread"}}`, string(raw))
}

func TestFieldFor(t *testing.T) {
	field, event, ok := FieldFor(InboundTypeNewImage)
	require.True(t, ok)
	assert.Equal(t, "filename", field)
	assert.Equal(t, EventImageUpdate, event)

	_, _, ok = FieldFor("hello")
	assert.False(t, ok)
}

func TestOutboundOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(Outbound{Type: OutboundTypeEvent, Event: EventTaskUpdate, Data: TaskUpdate{Task: "mop"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"event","event":"task_update","data":{"task":"mop"}}`, string(raw))
}
