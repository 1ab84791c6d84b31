package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	body := []byte(`{"action":"closed","repository":{"full_name":"acme/widgets"},"issue":{"number":1}}`)

	env, err := Decode("issues", "d-42", body)
	require.NoError(t, err)

	assert.Equal(t, "issues", env.Event)
	assert.Equal(t, "closed", env.Action)
	assert.Equal(t, "d-42", env.DeliveryID)
	assert.Equal(t, "acme/widgets", env.Repo)
	assert.Equal(t, body, env.Body)
}

func TestDecode_MissingFields(t *testing.T) {
	// Fields absent from the body decode to zero values, not errors.
	env, err := Decode("push", "", []byte(`{}`))
	require.NoError(t, err)

	assert.Empty(t, env.Action)
	assert.Empty(t, env.Repo)
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode("issues", "d-42", []byte(`{"action":`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedPayload), "error should wrap ErrMalformedPayload")
}
