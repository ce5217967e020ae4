package twin_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/datamodel"
	"github.com/kurochkinivan/webpa_collector/internal/domain"
	"github.com/kurochkinivan/webpa_collector/internal/twin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls atomic.Int64
	body  []byte
	err   error
}

func (f *fakeFetcher) FetchConfig(_ context.Context, _, _ string) ([]byte, error) {
	f.calls.Add(1)

	if f.err != nil {
		return nil, f.err
	}

	return f.body, nil
}

func TestTwin_NestsFetchedParameters(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		body: []byte(`{
			"parameters": [
				{"name": "Device.WiFi.AccessPoint.1.SSID", "value": "home", "dataType": 0, "parameterCount": 1}
			]
		}`),
	}

	svc := twin.NewService(slog.New(slog.DiscardHandler), fetcher, "", nil, 0)

	tree, err := svc.Twin(context.Background(), "B827EB5DF064", "Device.WiFi.")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"Device": map[string]any{
			"WiFi": map[string]any{
				"AccessPoint": map[string]any{
					"1": map[string]any{"SSID": "home"},
				},
			},
		},
	}, tree)
}

func TestTwin_CachesWithinTTL(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		body: []byte(`{"parameters": [{"name": "Device.DeviceInfo.UpTime", "value": "1", "dataType": 2, "parameterCount": 1}]}`),
	}

	svc := twin.NewService(slog.New(slog.DiscardHandler), fetcher, "", nil, time.Minute)

	ctx := context.Background()

	_, err := svc.Twin(ctx, "B827EB5DF064", "Device.DeviceInfo.")
	require.NoError(t, err)

	_, err = svc.Twin(ctx, "B827EB5DF064", "Device.DeviceInfo.")
	require.NoError(t, err)

	assert.EqualValues(t, 1, fetcher.calls.Load(), "second read within TTL must be served from cache")

	_, err = svc.Twin(ctx, "AABBCCDDEEFF", "Device.DeviceInfo.")
	require.NoError(t, err)

	assert.EqualValues(t, 2, fetcher.calls.Load(), "different device must not share the cache entry")
}

func TestTwin_PropagatesRetrievalError(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		err: &domain.RetrievalError{DeviceID: "B827EB5DF064", StatusCode: 520},
	}

	svc := twin.NewService(slog.New(slog.DiscardHandler), fetcher, "", nil, time.Minute)

	_, err := svc.Twin(context.Background(), "B827EB5DF064", "Device.")

	var retrieval *domain.RetrievalError
	require.ErrorAs(t, err, &retrieval)
	assert.Equal(t, 520, retrieval.StatusCode)
}

func TestTwin_ValidatesNamesAgainstIndex(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(`{"parameters": []}`)}

	index := datamodel.NewIndex(map[string]string{
		"Device.DeviceInfo.ModelName": "readOnly",
	})

	svc := twin.NewService(slog.New(slog.DiscardHandler), fetcher, "", index, 0)

	_, err := svc.Twin(context.Background(), "B827EB5DF064", "Device.Ghost.Thing")

	var noSuchPath *domain.NoSuchPathError
	require.ErrorAs(t, err, &noSuchPath)
	assert.Zero(t, fetcher.calls.Load(), "invalid names must not reach the management server")
}
