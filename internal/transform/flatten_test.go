package transform_test

import (
	"encoding/json"
	"testing"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
	"github.com/kurochkinivan/webpa_collector/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_ScalarParameter(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"parameters": [
			{
				"name": "Device.WiFi.AccessPoint.1.SSID",
				"value": "home",
				"dataType": 0,
				"parameterCount": 1,
				"message": "Success"
			}
		],
		"statusCode": 200
	}`)

	flat, err := transform.Flatten(raw, "results.json")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"Device.WiFi.AccessPoint.1.SSID": "home"}, flat)
}

func TestFlatten_SubtreeParameter(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"parameters": [
			{
				"name": "Device.WiFi.",
				"value": [
					{"name": "Device.WiFi.RadioNumberOfEntries", "value": "2", "dataType": 2},
					{"name": "Device.WiFi.Radio.1.Name", "value": "wifi0", "dataType": 0},
					{"name": "Device.WiFi.Radio.1.Alias", "value": "", "dataType": 0}
				],
				"dataType": 11,
				"parameterCount": 3,
				"message": "Success"
			}
		],
		"statusCode": 200
	}`)

	flat, err := transform.Flatten(raw, "results.json")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"Device.WiFi.RadioNumberOfEntries": 2,
		"Device.WiFi.Radio.1.Name":         "wifi0",
		"Device.WiFi.Radio.1.Alias":        "",
	}, flat)
}

func TestFlatten_Deterministic(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"parameters": [
			{
				"name": "Device.DeviceInfo.",
				"value": [
					{"name": "Device.DeviceInfo.UpTime", "value": "4242", "dataType": 2},
					{"name": "Device.DeviceInfo.ModelName", "value": "TG1682G", "dataType": 0},
					{"name": "Device.DeviceInfo.SerialNumber", "value": "SN0001", "dataType": 0}
				],
				"dataType": 11,
				"parameterCount": 3,
				"message": "Success"
			}
		],
		"statusCode": 200
	}`)

	first, err := transform.Flatten(raw, "results.json")
	require.NoError(t, err)

	second, err := transform.Flatten(raw, "results.json")
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func TestFlatten_NotJSON(t *testing.T) {
	t.Parallel()

	_, err := transform.Flatten([]byte("not json at all"), "results.json")

	var malformed *domain.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "results.json", malformed.Source)
}

func TestFlatten_MissingParameterList(t *testing.T) {
	t.Parallel()

	_, err := transform.Flatten([]byte(`{"statusCode": 200}`), "results.json")

	var malformed *domain.MalformedInputError
	require.ErrorAs(t, err, &malformed)
}

func TestFlatten_BadIntegerValue(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"parameters": [
			{"name": "Device.DeviceInfo.UpTime", "value": "soon", "dataType": 2, "parameterCount": 1}
		]
	}`)

	_, err := transform.Flatten(raw, "results.json")

	var malformed *domain.MalformedInputError
	require.ErrorAs(t, err, &malformed)
}

func TestNest_BuildsTree(t *testing.T) {
	t.Parallel()

	flat := map[string]any{
		"Device.WiFi.Radio.1.Name":         "wifi0",
		"Device.WiFi.RadioNumberOfEntries": 2,
		"Device.DeviceInfo.ModelName":      "TG1682G",
	}

	tree := transform.Nest(flat)

	assert.Equal(t, map[string]any{
		"Device": map[string]any{
			"WiFi": map[string]any{
				"Radio": map[string]any{
					"1": map[string]any{"Name": "wifi0"},
				},
				"RadioNumberOfEntries": 2,
			},
			"DeviceInfo": map[string]any{"ModelName": "TG1682G"},
		},
	}, tree)
}

func TestNest_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, transform.Nest(map[string]any{}))
}
