package models

// NA is the sentinel for fields that could not be derived. The output schema is
// always fully populated, so "known absent" is an explicit value, not an
// omitted key.
const NA = "NA"

// RawRecord is the loosely-typed field mapping produced by the upstream
// fetcher: upstream-specific label strings to text values. A nil or empty map
// means the upstream had no matching rows.
type RawRecord map[string]string

// Address is the structured form of the free-text principal place of business.
type Address struct {
	FullAddress string `json:"full_address"`
	Street      string `json:"street"`
	Locality    string `json:"locality"`
	Landmark    string `json:"landmark"`
	Floor       string `json:"floor"`
	City        string `json:"city"`
	District    string `json:"district"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	StateCode   string `json:"state_code"`
	Country     string `json:"country"`
}

// GSTDetails is the canonical registration record assembled once per request.
type GSTDetails struct {
	GSTIN            string  `json:"gstin"`
	LegalName        string  `json:"legal_name"`
	TradeName        string  `json:"trade_name"`
	Constitution     string  `json:"constitution_of_business"`
	TaxpayerType     string  `json:"taxpayer_type"`
	GSTStatus        string  `json:"gst_status"`
	IsActive         bool    `json:"is_active"`
	RegistrationDate string  `json:"registration_date"`
	RegistrationYear string  `json:"registration_year"`
	PANNumber        string  `json:"pan_number"`
	StateCode        string  `json:"state_code"`
	BusinessNature   string  `json:"business_nature"`
	PrincipalPlace   string  `json:"principal_place"`
	OtherOffice      string  `json:"other_office"`
	OfficeCount      int     `json:"office_count"`
	PrincipalAddress Address `json:"principal_address"`
	DataSource       string  `json:"data_source"`
	LastChecked      string  `json:"last_checked"`
}

// KeyDetails is the key-status block echoed alongside responses for a valid key.
type KeyDetails struct {
	ExpiryDate    string `json:"expiry_date"`
	DaysRemaining string `json:"days_remaining"`
	Status        string `json:"status"`
}

// LookupResponse is the success envelope for GET /.
type LookupResponse struct {
	Status     string     `json:"status"`
	GSTDetails GSTDetails `json:"gst_details"`
	IME        string     `json:"ime"`
	KeyDetails KeyDetails `json:"key_details"`
	Source     string     `json:"source"`
	PoweredBy  string     `json:"powered_by"`
}
