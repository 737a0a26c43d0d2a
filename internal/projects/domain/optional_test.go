package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phonePayload struct {
	Phone Optional[string] `json:"phone"`
}

func TestOptional_DecodeThreeStates(t *testing.T) {
	t.Run("missing key stays unset", func(t *testing.T) {
		var p phonePayload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Phone.IsSet())
		assert.False(t, p.Phone.IsNull())
		assert.Nil(t, p.Phone.Ptr())
	})

	t.Run("explicit null clears", func(t *testing.T) {
		var p phonePayload
		require.NoError(t, json.Unmarshal([]byte(`{"phone":null}`), &p))
		assert.True(t, p.Phone.IsSet())
		assert.True(t, p.Phone.IsNull())
		_, ok := p.Phone.Get()
		assert.False(t, ok)
	})

	t.Run("value is kept", func(t *testing.T) {
		var p phonePayload
		require.NoError(t, json.Unmarshal([]byte(`{"phone":"555-0101"}`), &p))
		v, ok := p.Phone.Get()
		require.True(t, ok)
		assert.Equal(t, "555-0101", v)
	})

	t.Run("wrong type fails", func(t *testing.T) {
		var p phonePayload
		assert.Error(t, json.Unmarshal([]byte(`{"phone":12}`), &p))
	})
}

func TestOptional_Marshal(t *testing.T) {
	b, err := json.Marshal(phonePayload{Phone: Value("1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phone":"1"}`, string(b))

	b, err = json.Marshal(phonePayload{Phone: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phone":null}`, string(b))
}
