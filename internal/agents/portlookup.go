package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kestrelfreight/logiflow/graph/tool"
)

// portEntry is the per-port payload returned by the port lookup
// collaborator: {port_name, port_code, country, is_country}.
type portEntry struct {
	name      string
	code      string
	country   string
	isCountry bool
}

// portTable is a small embedded gazetteer standing in for the CSV-driven
// lookup the original port lookup agent performed; loading a real port
// database from CSV is out of scope. Keys are lower-cased port names and
// the bare country names customers sometimes write in place of a port.
// It also serves as the offline fallback when no registry tool is wired
// or the registry can't answer.
var portTable = map[string]portEntry{
	"shanghai":    {name: "Shanghai", code: "CNSHA", country: "China"},
	"ningbo":      {name: "Ningbo", code: "CNNGB", country: "China"},
	"shenzhen":    {name: "Shenzhen", code: "CNSZX", country: "China"},
	"los angeles": {name: "Los Angeles", code: "USLAX", country: "United States"},
	"long beach":  {name: "Long Beach", code: "USLGB", country: "United States"},
	"new york":    {name: "New York", code: "USNYC", country: "United States"},
	"savannah":    {name: "Savannah", code: "USSAV", country: "United States"},
	"rotterdam":   {name: "Rotterdam", code: "NLRTM", country: "Netherlands"},
	"hamburg":     {name: "Hamburg", code: "DEHAM", country: "Germany"},
	"singapore":   {name: "Singapore", code: "SGSIN", country: "Singapore"},
	"busan":       {name: "Busan", code: "KRPUS", country: "South Korea"},
	"china":       {name: "", code: "", country: "China", isCountry: true},
	"germany":     {name: "", code: "", country: "Germany", isCountry: true},
	"netherlands": {name: "", code: "", country: "Netherlands", isCountry: true},
}

const portCacheTTL = 30 * time.Minute
const portCacheCleanup = time.Hour

// PortLookup resolves a free-text port or country name to a structured
// entry, caching results for portCacheTTL since the same handful of
// ports recur across a thread's turns. When a registry tool is wired (see
// NewPortLookupWithRegistry), lookups first query it over the same
// request/response shape tool.HTTPTool uses, falling back to the embedded
// portTable on any miss, transport error, or malformed response.
type PortLookup struct {
	cache       *gocache.Cache
	registry    tool.Tool
	registryURL string
}

// NewPortLookup returns a PortLookup backed only by the embedded table.
func NewPortLookup() *PortLookup {
	return &PortLookup{cache: gocache.New(portCacheTTL, portCacheCleanup)}
}

// NewPortLookupWithRegistry wires an external port registry behind
// registry (tool.NewHTTPTool() against a live gazetteer service in
// production, tool.MockTool in tests). registryURL is queried as
// registryURL+"?name="+key via registry.Call, the same "method"/"url"
// input and "body" output shape HTTPTool models. A nil registry, a
// transport error, or an unparseable body all fall back to portTable.
func NewPortLookupWithRegistry(registry tool.Tool, registryURL string) *PortLookup {
	return &PortLookup{
		cache:       gocache.New(portCacheTTL, portCacheCleanup),
		registry:    registry,
		registryURL: registryURL,
	}
}

func (p *PortLookup) Process(ctx context.Context, request map[string]any) (map[string]any, error) {
	name := str(request, "port_name")
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return map[string]any{"port_name": name, "is_country": false}, nil
	}

	if cached, ok := p.cache.Get(key); ok {
		return cached.(map[string]any), nil
	}

	response, found := p.lookupRegistry(ctx, key, name)
	if !found {
		response = p.lookupTable(key, name)
	}

	p.cache.Set(key, response, gocache.DefaultExpiration)
	return response, nil
}

func (p *PortLookup) lookupTable(key, name string) map[string]any {
	entry, found := portTable[key]
	if !found {
		return map[string]any{"port_name": name, "is_country": false}
	}
	return map[string]any{
		"port_name":  firstNonEmptyResolved(entry.name, name),
		"port_code":  entry.code,
		"country":    entry.country,
		"is_country": entry.isCountry,
	}
}

// lookupRegistry consults the optional external registry tool. Any
// transport failure or malformed body reports found=false so Process
// degrades to the embedded table rather than failing the turn.
func (p *PortLookup) lookupRegistry(ctx context.Context, key, name string) (map[string]any, bool) {
	if p.registry == nil {
		return nil, false
	}

	out, err := p.registry.Call(ctx, map[string]any{
		"method": "GET",
		"url":    fmt.Sprintf("%s?name=%s", p.registryURL, key),
	})
	if err != nil {
		return nil, false
	}

	body, _ := out["body"].(string)
	if body == "" {
		return nil, false
	}

	var decoded struct {
		PortName  string `json:"port_name"`
		PortCode  string `json:"port_code"`
		Country   string `json:"country"`
		IsCountry bool   `json:"is_country"`
	}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil || decoded.Country == "" {
		return nil, false
	}

	return map[string]any{
		"port_name":  firstNonEmptyResolved(decoded.PortName, name),
		"port_code":  decoded.PortCode,
		"country":    decoded.Country,
		"is_country": decoded.IsCountry,
	}, true
}

func firstNonEmptyResolved(resolved, original string) string {
	if resolved != "" {
		return resolved
	}
	return original
}
