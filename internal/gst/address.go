package gst

import (
	"regexp"
	"strings"

	"github.com/hyper-a11/cyber-gst-info/internal/models"
)

var pincodeRe = regexp.MustCompile(`\b\d{6}\b`)

// ParseAddress splits a free-text address into structured components. The
// heuristic is best-effort and never fails: any component not derivable from
// the comma-separated segments degrades to the sentinel. The state code comes
// from the GSTIN, not from the address text; country is fixed because the
// upstream serves a single country.
func ParseAddress(text, stateCode string) models.Address {
	if stateCode == "" {
		stateCode = models.NA
	}
	addr := models.Address{
		FullAddress: models.NA,
		Street:      models.NA,
		Locality:    models.NA,
		Landmark:    models.NA,
		Floor:       models.NA,
		City:        models.NA,
		District:    models.NA,
		State:       models.NA,
		Pincode:     models.NA,
		StateCode:   stateCode,
		Country:     "India",
	}

	text = strings.TrimSpace(text)
	if text == "" || text == models.NA {
		return addr
	}
	addr.FullAddress = text

	var segments []string
	for _, segment := range strings.Split(text, ",") {
		if segment = strings.TrimSpace(segment); segment != "" {
			segments = append(segments, segment)
		}
	}
	n := len(segments)

	if n > 0 {
		addr.Street = segments[0]
		if strings.Contains(strings.ToUpper(segments[0]), "FLOOR") {
			addr.Floor = segments[0]
		}
	}
	if n > 1 {
		addr.Locality = segments[1]
	}
	if n > 2 {
		addr.Landmark = segments[2]
	}

	// Trailing segments are positional from the end: ..., city, district,
	// state, pincode.
	if n >= 4 {
		addr.City = segments[n-4]
	}
	if n >= 3 {
		addr.District = segments[n-3]
	}
	if n >= 2 {
		addr.State = segments[n-2]
	}

	if pin := pincodeRe.FindString(text); pin != "" {
		addr.Pincode = pin
	}

	return addr
}
