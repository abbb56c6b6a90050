package gst

import (
	"regexp"
	"strings"
	"time"

	"github.com/hyper-a11/cyber-gst-info/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Normalizer turns a raw upstream field mapping into the canonical record.
// One normalizer serves every upstream variant; the vocabularies differ only
// in the alias table.
type Normalizer struct {
	aliases    AliasTable
	dataSource string
	loc        *time.Location
}

// NewNormalizer creates a normalizer with the default alias table.
func NewNormalizer(dataSource string, loc *time.Location) *Normalizer {
	return NewNormalizerWithAliases(dataSource, loc, DefaultAliases())
}

// NewNormalizerWithAliases creates a normalizer with a custom alias table, for
// upstream variants with their own label vocabulary.
func NewNormalizerWithAliases(dataSource string, loc *time.Location, aliases AliasTable) *Normalizer {
	return &Normalizer{
		aliases:    aliases,
		dataSource: dataSource,
		loc:        loc,
	}
}

// CanonicalGSTIN trims and uppercases an identifier. No format or checksum
// validation happens here; derived fields degrade positionally instead.
func CanonicalGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// Normalize builds a fully-populated canonical record from a raw upstream
// mapping. A nil or empty raw record yields an all-sentinel record rather than
// an error; the boundary layer decides whether that counts as a failure.
func (n *Normalizer) Normalize(gstin string, raw models.RawRecord, now time.Time) models.GSTDetails {
	gstin = CanonicalGSTIN(gstin)
	stateCode := extractStateCode(gstin)

	gstStatus := n.aliases.Lookup(raw, FieldGSTStatus)
	regDate := n.aliases.Lookup(raw, FieldRegistrationDate)
	principal := n.aliases.Lookup(raw, FieldPrincipalPlace)
	otherOffice := n.aliases.Lookup(raw, FieldOtherOffice)

	officeCount := 1
	if otherOffice != models.NA {
		officeCount = 2
	}

	return models.GSTDetails{
		GSTIN:            gstin,
		LegalName:        n.aliases.Lookup(raw, FieldLegalName),
		TradeName:        n.aliases.Lookup(raw, FieldTradeName),
		Constitution:     n.aliases.Lookup(raw, FieldConstitution),
		TaxpayerType:     n.aliases.Lookup(raw, FieldTaxpayerType),
		GSTStatus:        gstStatus,
		IsActive:         isActive(gstStatus),
		RegistrationDate: regDate,
		RegistrationYear: registrationYear(regDate),
		PANNumber:        extractPAN(gstin),
		StateCode:        stateCode,
		BusinessNature:   n.aliases.Lookup(raw, FieldBusinessNature),
		PrincipalPlace:   principal,
		OtherOffice:      otherOffice,
		OfficeCount:      officeCount,
		PrincipalAddress: ParseAddress(principal, stateCode),
		DataSource:       n.dataSource,
		LastChecked:      now.In(n.loc).Format(timestampLayout),
	}
}

// extractPAN slices the embedded PAN fragment from a 15-character GSTIN.
func extractPAN(gstin string) string {
	if len(gstin) != 15 {
		return models.NA
	}
	return gstin[2:12]
}

// extractStateCode slices the leading two-character state code.
func extractStateCode(gstin string) string {
	if len(gstin) < 2 {
		return models.NA
	}
	return gstin[:2]
}

// isActive applies the allow-list rule: anything other than an explicit
// "Active" status, including unrecognized upstream wording, counts as
// inactive.
func isActive(status string) bool {
	return strings.EqualFold(status, "Active")
}

// registrationYear derives the year from either upstream date convention,
// DD/MM/YYYY or YYYY-MM-DD. Slash format is checked first since it is the
// scraped sources' convention.
func registrationYear(date string) string {
	if date == "" || date == models.NA {
		return models.NA
	}
	if strings.Contains(date, "/") {
		return date[strings.LastIndex(date, "/")+1:]
	}
	if isoDateRe.MatchString(date) {
		return date[:4]
	}
	return models.NA
}
