package agents

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// containerAliases maps the many ways customers spell a container type to
// its standardized form and the fallback type used for rate lookups when
// the exact standardized type has no published rate.
var containerAliases = map[string]struct{ standardized, rateFallback string }{
	"20gp":  {"20GP", "20GP"},
	"20ft":  {"20GP", "20GP"},
	"20'":   {"20GP", "20GP"},
	"20":    {"20GP", "20GP"},
	"40gp":  {"40GP", "40GP"},
	"40ft":  {"40GP", "40GP"},
	"40'":   {"40GP", "40GP"},
	"40":    {"40GP", "40GP"},
	"40hc":  {"40HC", "40GP"},
	"40hq":  {"40HC", "40GP"},
	"40hi":  {"40HC", "40GP"},
	"45hc":  {"45HC", "40HC"},
	"45hq":  {"45HC", "40HC"},
	"20rf":  {"20RF", "20RF"},
	"20reefer": {"20RF", "20RF"},
	"40rf":  {"40RF", "40RF"},
	"40reefer": {"40RF", "40RF"},
}

const containerCacheSize = 128

// ContainerStandardizer normalizes free-text container types (FCL only;
// LCL shipments never reach this adapter per the merge engine's
// shipment_type branch), caching results with an LRU front since a
// thread's turns repeat the same handful of container types.
type ContainerStandardizer struct {
	cache *lru.Cache[string, [2]string]
}

func NewContainerStandardizer() *ContainerStandardizer {
	cache, _ := lru.New[string, [2]string](containerCacheSize)
	return &ContainerStandardizer{cache: cache}
}

func (c *ContainerStandardizer) Process(_ context.Context, request map[string]any) (map[string]any, error) {
	raw := str(request, "container_type")
	key := strings.ToLower(strings.TrimSpace(raw))

	if pair, ok := c.cache.Get(key); ok {
		return map[string]any{"standardized_type": pair[0], "rate_fallback_type": pair[1]}, nil
	}

	alias, found := containerAliases[key]
	standardized, fallback := alias.standardized, alias.rateFallback
	if !found {
		standardized, fallback = strings.ToUpper(raw), strings.ToUpper(raw)
	}

	c.cache.Add(key, [2]string{standardized, fallback})
	return map[string]any{"standardized_type": standardized, "rate_fallback_type": fallback}, nil
}
