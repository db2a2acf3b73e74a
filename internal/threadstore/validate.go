package threadstore

import (
	"sort"
	"strings"
)

// PortInfo is the enriched result of a port lookup for a single port name.
type PortInfo struct {
	PortName  string
	PortCode  string
	Country   string
	IsCountry bool
}

// PortLookupResult carries the enriched origin/destination port lookups
// consulted by Validate.
type PortLookupResult struct {
	Origin      *PortInfo
	Destination *PortInfo
}

// priorityTable assigns a routing/phrasing priority to each mandatory
// field name, ported from agents/data_validation_agent.py's
// _prioritize_missing_fields. Ties within a priority break alphabetically
// by the raw label.
var priorityTable = map[string]int{
	"origin":                 1,
	"destination":            1,
	"container_type":         2,
	"container_count":        2,
	"requested_dates":        2,
	"shipment_date":          2,
	"commodity":              3,
	"weight":                 3,
	"volume":                 3,
	"name":                   4,
	"email":                  4,
	"phone":                  4,
	"company":                4,
	"contact_information":    4,
	"special_requirements":   4,
}

const defaultPriority = 99

// fieldPriority returns priorityTable's priority for label, matching
// case-insensitively and accepting either an exact match or a
// substring-in-either-direction match against the table's keys. When
// label matches several keys (e.g. "Commodity Name" matches both
// "commodity" and "name"), the lowest priority number wins.
func fieldPriority(label string) int {
	lower := strings.ToLower(label)
	best := defaultPriority
	for key, priority := range priorityTable {
		if lower == key || strings.Contains(lower, key) || strings.Contains(key, lower) {
			if priority < best {
				best = priority
			}
		}
	}
	return best
}

// Prioritize stably sorts rawList by fieldPriority, breaking ties
// alphabetically (case-insensitive) within a priority band.
func Prioritize(rawList []string) []string {
	ordered := make([]string, len(rawList))
	copy(ordered, rawList)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := fieldPriority(ordered[i]), fieldPriority(ordered[j])
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(ordered[i]) < strings.ToLower(ordered[j])
	})
	return ordered
}

// Validate inspects the merged extraction and the enriched port lookup,
// returning ok=true iff no mandatory field is missing, together with the
// ordered, human-readable list of what is missing.
//
// Ported from
// langgraph_workflow_orchestrator.py::_validate_mandatory_fields_for_confirmation.
func Validate(extraction Extraction, ports PortLookupResult) (ok bool, missing []string) {
	sd := extraction.ShipmentDetails
	var raw []string

	// 1. Origin / destination: a specific port is required, not merely a
	// country.
	if sd.Origin == "" || (ports.Origin != nil && ports.Origin.IsCountry) {
		if sd.Origin == "" && sd.OriginCountry == "" {
			raw = append(raw, "Origin")
		} else {
			raw = append(raw, "Origin (specific port required)")
		}
	}
	if sd.Destination == "" || (ports.Destination != nil && ports.Destination.IsCountry) {
		if sd.Destination == "" && sd.DestinationCountry == "" {
			raw = append(raw, "Destination")
		} else {
			raw = append(raw, "Destination (specific port required)")
		}
	}

	shipmentType := strings.ToUpper(strings.TrimSpace(sd.ShipmentType))
	typeKnown := shipmentType == "FCL" || shipmentType == "LCL"
	if !typeKnown {
		typeKnown = mentionsShipmentType(extraction.SpecialRequirements)
		if typeKnown && shipmentType == "" {
			shipmentType = inferredShipmentType(extraction.SpecialRequirements)
		}
	}

	// 2. Shipment type unknown forces every type-dependent field.
	if !typeKnown {
		raw = append(raw,
			"Shipment Type (FCL or LCL)",
			"Container Type",
			"Weight",
			"Volume",
			"Shipment Date",
			"Commodity Name",
		)
	} else {
		switch shipmentType {
		case "FCL":
			// 3. Given FCL.
			if sd.ContainerType == "" {
				raw = append(raw, "Container Type")
			}
			if sd.ShipmentDate == "" {
				raw = append(raw, "Shipment Date")
			}
			if sd.Commodity == "" {
				raw = append(raw, "Commodity Name")
			}
			if sd.ContainerCount == "" {
				raw = append(raw, "Quantity (number of containers)")
			}
		case "LCL":
			// 4. Given LCL.
			haveWeight := sd.Weight != ""
			haveVolume := sd.Volume != ""
			switch {
			case !haveWeight && !haveVolume:
				raw = append(raw, "Weight", "Volume")
			case haveWeight && !haveVolume:
				raw = append(raw, "Volume (required with weight for LCL)")
			case !haveWeight && haveVolume:
				raw = append(raw, "Weight (required with volume for LCL)")
			}
			if sd.ShipmentDate == "" {
				raw = append(raw, "Shipment Date")
			}
			if sd.Commodity == "" {
				raw = append(raw, "Commodity Name")
			}
		}
	}

	raw = stripLCLContainerEntries(raw, shipmentType)

	ordered := Prioritize(raw)
	return len(ordered) == 0, ordered
}

func mentionsShipmentType(requirements []string) bool {
	for _, r := range requirements {
		upper := strings.ToUpper(r)
		if strings.Contains(upper, "FCL") || strings.Contains(upper, "LCL") {
			return true
		}
	}
	return false
}

func inferredShipmentType(requirements []string) string {
	for _, r := range requirements {
		upper := strings.ToUpper(r)
		if strings.Contains(upper, "FCL") {
			return "FCL"
		}
		if strings.Contains(upper, "LCL") {
			return "LCL"
		}
	}
	return ""
}

// stripLCLContainerEntries is the validator's final safety pass: under no
// circumstance may a container-related entry survive in the missing list
// for an LCL shipment.
func stripLCLContainerEntries(raw []string, shipmentType string) []string {
	if shipmentType != "LCL" {
		return raw
	}
	filtered := raw[:0:0]
	for _, entry := range raw {
		lower := strings.ToLower(entry)
		if strings.Contains(lower, "container") || strings.Contains(lower, "number of containers") || strings.Contains(lower, "quantity (number of containers)") {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}
