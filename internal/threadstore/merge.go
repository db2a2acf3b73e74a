package threadstore

import "strings"

// additionalNotesDenylist holds boilerplate lines dropped from
// AdditionalNotes during the merge so the thread's running notes don't
// accumulate the bot's own stock phrasing turn after turn. The exact list
// is an implementation choice, not a contract (spec DESIGN NOTES §9).
var additionalNotesDenylist = []string{
	"please provide the updated quote",
	"please provide these details",
	"please provide the correct details",
	"please provide it in your response",
}

// Merge applies the recency-priority rule: new overrides cumulative field
// by field, but only where new carries a non-empty value. An empty string
// in new is "no update", never a delete. The one exception is the
// shipment-type branch: declaring LCL drops the (now incoherent) container
// fields, and declaring FCL drops weight/volume when new doesn't supply
// them, since they are then considered stale from an earlier, possibly
// abandoned, FCL attempt.
func Merge(new, cumulative Extraction) Extraction {
	merged := cumulative

	merged.ShipmentDetails = mergeShipmentDetails(new.ShipmentDetails, cumulative.ShipmentDetails)
	merged.ContactInformation = mergeContactInformation(new.ContactInformation, cumulative.ContactInformation)
	merged.TimelineInformation = mergeTimelineInformation(new.TimelineInformation, cumulative.TimelineInformation)
	merged.SpecialRequirements = mergeSpecialRequirements(new.SpecialRequirements, cumulative.SpecialRequirements)
	merged.RateInformation = mergeRateInformation(new.RateInformation, cumulative.RateInformation)
	merged.AdditionalNotes = mergeAdditionalNotes(new.AdditionalNotes, cumulative.AdditionalNotes)

	return merged
}

func orString(new, old string) string {
	if new != "" {
		return new
	}
	return old
}

func mergeShipmentDetails(new, cumulative ShipmentDetails) ShipmentDetails {
	merged := cumulative

	merged.Origin = orString(new.Origin, cumulative.Origin)
	merged.Destination = orString(new.Destination, cumulative.Destination)
	merged.OriginCountry = orString(new.OriginCountry, cumulative.OriginCountry)
	merged.DestinationCountry = orString(new.DestinationCountry, cumulative.DestinationCountry)
	merged.ContainerType = orString(new.ContainerType, cumulative.ContainerType)
	merged.ContainerCount = orString(new.ContainerCount, cumulative.ContainerCount)
	merged.Commodity = orString(new.Commodity, cumulative.Commodity)
	merged.Weight = orString(new.Weight, cumulative.Weight)
	merged.Volume = orString(new.Volume, cumulative.Volume)
	merged.ShipmentDate = orString(new.ShipmentDate, cumulative.ShipmentDate)
	merged.Incoterm = orString(new.Incoterm, cumulative.Incoterm)

	switch strings.ToUpper(strings.TrimSpace(new.ShipmentType)) {
	case "LCL":
		merged.ShipmentType = "LCL"
		merged.ContainerType = ""
		merged.ContainerCount = ""
	case "FCL":
		merged.ShipmentType = "FCL"
		if new.Weight == "" {
			merged.Weight = ""
		}
		if new.Volume == "" {
			merged.Volume = ""
		}
	default:
		merged.ShipmentType = cumulative.ShipmentType
	}

	return merged
}

func mergeContactInformation(new, cumulative ContactInformation) ContactInformation {
	return ContactInformation{
		Name:     orString(new.Name, cumulative.Name),
		Email:    orString(new.Email, cumulative.Email),
		Phone:    orString(new.Phone, cumulative.Phone),
		Whatsapp: orString(new.Whatsapp, cumulative.Whatsapp),
		Company:  orString(new.Company, cumulative.Company),
	}
}

func mergeTimelineInformation(new, cumulative TimelineInformation) TimelineInformation {
	return TimelineInformation{
		RequestedDates: orString(new.RequestedDates, cumulative.RequestedDates),
		TransitTime:    orString(new.TransitTime, cumulative.TransitTime),
		Urgency:        orString(new.Urgency, cumulative.Urgency),
		Deadline:       orString(new.Deadline, cumulative.Deadline),
	}
}

// mergeSpecialRequirements is an ordered union: append any new entry not
// already present by exact match, preserving the cumulative order.
func mergeSpecialRequirements(new, cumulative []string) []string {
	merged := make([]string, len(cumulative))
	copy(merged, cumulative)

	seen := make(map[string]bool, len(cumulative))
	for _, s := range cumulative {
		seen[s] = true
	}
	for _, s := range new {
		if s == "" || seen[s] {
			continue
		}
		merged = append(merged, s)
		seen[s] = true
	}
	return merged
}

func mergeRateInformation(new, cumulative map[string]string) map[string]string {
	merged := make(map[string]string, len(cumulative)+len(new))
	for k, v := range cumulative {
		merged[k] = v
	}
	for k, v := range new {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}

// mergeAdditionalNotes is a line-wise union of new and cumulative, dropping
// blank lines and denylisted boilerplate. If the union is empty, fall back
// to the new value verbatim (so a short acknowledgment note still survives
// when there's nothing else to union against).
func mergeAdditionalNotes(new, cumulative string) string {
	seen := make(map[string]bool)
	var lines []string

	addLines := func(text string) {
		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || isDenylistedNote(trimmed) || seen[trimmed] {
				continue
			}
			seen[trimmed] = true
			lines = append(lines, trimmed)
		}
	}

	addLines(cumulative)
	addLines(new)

	if len(lines) == 0 {
		return new
	}
	return strings.Join(lines, "\n")
}

func isDenylistedNote(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range additionalNotesDenylist {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
