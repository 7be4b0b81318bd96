package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexUint(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    uint
		wantErr bool
	}{
		{name: "number", raw: `{"id": 7}`, want: 7},
		{name: "string", raw: `{"id": "7"}`, want: 7},
		{name: "padded string", raw: `{"id": " 7 "}`, want: 7},
		{name: "empty string", raw: `{"id": ""}`, want: 0},
		{name: "null", raw: `{"id": null}`, want: 0},
		{name: "negative", raw: `{"id": -1}`, wantErr: true},
		{name: "word", raw: `{"id": "seven"}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var dst struct {
				ID FlexUint `json:"id"`
			}
			err := json.Unmarshal([]byte(tc.raw), &dst)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, dst.ID.Uint())
		})
	}
}

func TestFlexBool(t *testing.T) {
	var dst struct {
		A *FlexBool `json:"a"`
		B *FlexBool `json:"b"`
		C *FlexBool `json:"c"`
		D *FlexBool `json:"d"`
		E FlexBool  `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": true, "b": "0", "c": 1, "d": null, "e": null}`), &dst))

	assert.True(t, *optBool(dst.A))
	assert.False(t, *optBool(dst.B))
	assert.True(t, *optBool(dst.C))
	assert.Nil(t, dst.D)
	assert.False(t, bool(dst.E))
	assert.Nil(t, optBool(nil))

	var bad struct {
		A FlexBool `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a": "maybe"}`), &bad))
}

func TestRequestBind_IgnoresEnvelopeField(t *testing.T) {
	req := &Request{Action: "login", Body: []byte(`{"action":"login","email":"a@x.com"}`)}

	var in emailRequest
	require.NoError(t, req.Bind(&in))
	assert.Equal(t, "a@x.com", in.Email)
}
