package workflow

// ForwarderRecord is a single entry of the forwarder registry carried in
// a thread's ForwarderContext.
type ForwarderRecord struct {
	Name     string
	Country  string
	Operator string
	Email    string
	Company  string
}

// forwarderRegistry is a country-keyed index of forwarders together with
// the order their countries were first seen in the source data, so a
// caller iterating "every country" gets a deterministic, reproducible
// order instead of Go's randomized map iteration order.
type forwarderRegistry struct {
	byCountry map[string][]ForwarderRecord
	order     []string
}

func (r forwarderRegistry) forCountry(country string) []ForwarderRecord {
	return r.byCountry[country]
}

// forwarderRegistryFrom decodes the loosely-typed ForwarderContext map
// into a country-keyed registry. The expected shape, grounded on
// utils/forwarder_manager.py's forwarders_by_country index, is
// {"forwarders": [{"name":..., "country":..., "operator":..., "email":...,
// "company":...}, ...]}; entries missing a country are skipped. The
// registry's country order mirrors the order countries first appear in
// the "forwarders" list, matching the insertion-order iteration of the
// Python source's dict-backed index.
func forwarderRegistryFrom(ctx map[string]any) forwarderRegistry {
	registry := forwarderRegistry{byCountry: map[string][]ForwarderRecord{}}
	raw, ok := ctx["forwarders"].([]any)
	if !ok {
		return registry
	}
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		country := stringField(m, "country")
		if country == "" {
			continue
		}
		name := stringField(m, "name")
		company := stringField(m, "company")
		if company == "" {
			company = name
		}
		if _, seen := registry.byCountry[country]; !seen {
			registry.order = append(registry.order, country)
		}
		registry.byCountry[country] = append(registry.byCountry[country], ForwarderRecord{
			Name:     name,
			Country:  country,
			Operator: stringField(m, "operator"),
			Email:    stringField(m, "email"),
			Company:  company,
		})
	}
	return registry
}

// assignForwarderForRoute implements the §4.8 country-matching policy:
// destination-country matches beat origin-country matches, which beat any
// fallback (the first forwarder found, scanning countries in the order
// they first appeared in the source data). Reports false when the
// registry is empty.
func assignForwarderForRoute(registry forwarderRegistry, originCountry, destinationCountry string) (ForwarderRecord, bool) {
	if fs := registry.forCountry(destinationCountry); len(fs) > 0 {
		return fs[0], true
	}
	if fs := registry.forCountry(originCountry); len(fs) > 0 {
		return fs[0], true
	}
	for _, country := range registry.order {
		if fs := registry.forCountry(country); len(fs) > 0 {
			return fs[0], true
		}
	}
	return ForwarderRecord{}, false
}
