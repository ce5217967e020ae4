package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
	"github.com/kurochkinivan/webpa_collector/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPretty_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"Device.WiFi.AccessPoint.1.SSID":"home"}`,
		`{"nested":{"a":[1,2,3],"b":null},"uptime":99999999999999}`,
		`[]`,
		`"just a string"`,
		`42`,
	}

	for _, input := range inputs {
		var out bytes.Buffer
		err := render.Pretty(strings.NewReader(input), &out, "stdin")
		require.NoError(t, err, "input: %s", input)

		var want, got any
		require.NoError(t, json.Unmarshal([]byte(input), &want))
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, want, got, "input: %s", input)
	}
}

func TestPretty_MalformedInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := render.Pretty(strings.NewReader(`{"unterminated":`), &out, "stdin")

	var malformed *domain.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Zero(t, out.Len(), "no output must be produced for malformed input")
}

func TestMarshalDocument_Deterministic(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"Device.WiFi.Radio.1.Name": "wifi0",
		"Device.DeviceInfo.UpTime": 4242,
		"Device.DeviceInfo.Serial": "SN0001",
	}

	first, err := render.MarshalDocument(doc, true)
	require.NoError(t, err)

	second, err := render.MarshalDocument(doc, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, bytes.HasSuffix(first, []byte("\n")))
}
