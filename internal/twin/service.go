package twin

import (
	"context"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kurochkinivan/webpa_collector/internal/datamodel"
	"github.com/kurochkinivan/webpa_collector/internal/transform"
)

// DefaultNames is the path filter used when the caller does not ask for
// specific parameters: the identity and interface subtrees that make up
// a useful device twin.
const DefaultNames = "Device.DeviceInfo.Manufacturer," +
	"Device.DeviceInfo.ModelName," +
	"Device.DeviceInfo.Description," +
	"Device.DeviceInfo.ProductClass," +
	"Device.DeviceInfo.SerialNumber," +
	"Device.DeviceInfo.HardwareVersion," +
	"Device.DeviceInfo.SoftwareVersion," +
	"Device.DeviceInfo.UpTime," +
	"Device.Bridging.Bridge.," +
	"Device.Ethernet.," +
	"Device.WiFi.," +
	"Device.Hosts."

type Fetcher interface {
	FetchConfig(ctx context.Context, deviceID, names string) ([]byte, error)
}

// Service assembles on-demand device twins: fetch, flatten, nest. Twins
// are cached per device and path filter for a short TTL so bursts of
// reads do not hammer the management server.
type Service struct {
	log          *slog.Logger
	fetcher      Fetcher
	defaultNames string
	index        *datamodel.Index
	cache        *gocache.Cache
}

// NewService builds a twin service. index may be nil, in which case
// requested names are not validated against a data model. ttl <= 0
// disables caching.
func NewService(log *slog.Logger, fetcher Fetcher, defaultNames string, index *datamodel.Index, ttl time.Duration) *Service {
	s := &Service{
		log:          log,
		fetcher:      fetcher,
		defaultNames: defaultNames,
		index:        index,
	}

	if s.defaultNames == "" {
		s.defaultNames = DefaultNames
	}

	if ttl > 0 {
		s.cache = gocache.New(ttl, 2*ttl)
	}

	return s
}

// Twin returns the nested parameter tree for one device. names is a
// comma-separated path filter; empty means the service default.
func (s *Service) Twin(ctx context.Context, deviceID, names string) (map[string]any, error) {
	if names == "" {
		names = s.defaultNames
	}

	if s.index != nil {
		if err := s.index.ValidateNames(names); err != nil {
			return nil, err
		}
	}

	key := cacheKey(deviceID, names)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.log.DebugContext(ctx, "twin served from cache", slog.String("device_id", deviceID))
			return cached.(map[string]any), nil
		}
	}

	raw, err := s.fetcher.FetchConfig(ctx, deviceID, names)
	if err != nil {
		return nil, err
	}

	flat, err := transform.Flatten(raw, "device "+deviceID)
	if err != nil {
		return nil, err
	}

	tree := transform.Nest(flat)

	if s.cache != nil {
		s.cache.Set(key, tree, gocache.DefaultExpiration)
	}

	return tree, nil
}

func cacheKey(deviceID, names string) string {
	return strings.ToLower(strings.TrimPrefix(deviceID, "mac:")) + "|" + names
}
