package gst

import (
	"strings"

	"github.com/hyper-a11/cyber-gst-info/internal/models"
)

// Canonical field names used by the alias table.
const (
	FieldLegalName        = "legal_name"
	FieldTradeName        = "trade_name"
	FieldConstitution     = "constitution_of_business"
	FieldTaxpayerType     = "taxpayer_type"
	FieldGSTStatus        = "gst_status"
	FieldRegistrationDate = "registration_date"
	FieldBusinessNature   = "business_nature"
	FieldPrincipalPlace   = "principal_place"
	FieldOtherOffice      = "other_office"
)

// AliasTable maps each canonical field to the upstream label strings that may
// carry it, in priority order. The upstream sources expose the same semantic
// fields under different vocabularies (scraped HTML labels, embedded JSON
// keys, REST payload keys); reconciliation is a pure first-present-non-empty
// lookup over this table.
type AliasTable map[string][]string

// DefaultAliases returns the alias table covering the known upstream
// vocabularies.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldLegalName:        {"Legal Name of Business", "lgnm", "LegalName", "Legal Name"},
		FieldTradeName:        {"Trade Name", "tradeNam", "TradeName"},
		FieldConstitution:     {"Constitution of Business", "ctb", "Constitution"},
		FieldTaxpayerType:     {"Taxpayer Type", "dty", "TaxpayerType"},
		FieldGSTStatus:        {"GSTIN / UIN Status", "sts", "Status", "GSTIN Status"},
		FieldRegistrationDate: {"Effective Date of Registration", "rgdt", "Date of Registration", "RegistrationDate"},
		FieldBusinessNature:   {"Nature of Business", "ntr", "NatureOfBusiness"},
		FieldPrincipalPlace:   {"Principal Place of Business", "adr", "PrincipalPlace"},
		FieldOtherOffice:      {"Other Office 1", "Additional Places of Business", "adadr"},
	}
}

// Lookup resolves a canonical field from a raw record by trying its aliases in
// order, taking the first present, non-empty value. Unknown fields and absent
// values resolve to the sentinel.
func (t AliasTable) Lookup(raw models.RawRecord, field string) string {
	for _, alias := range t[field] {
		if value, ok := raw[alias]; ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return models.NA
}
