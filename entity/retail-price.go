package entity

// RetailPrice is one item of the Azure Retail Prices API.
type RetailPrice struct {
	CurrencyCode         string        `json:"currencyCode"`
	TierMinimumUnits     float64       `json:"tierMinimumUnits"`
	ReservationTerm      string        `json:"reservationTerm,omitempty"`
	RetailPrice          float64       `json:"retailPrice"`
	UnitPrice            float64       `json:"unitPrice"`
	OriginalPrice        *float64      `json:"originalPrice,omitempty"`
	ArmRegionName        string        `json:"armRegionName"`
	Location             string        `json:"location"`
	EffectiveStartDate   string        `json:"effectiveStartDate"`
	MeterID              string        `json:"meterId"`
	MeterName            string        `json:"meterName"`
	ProductID            string        `json:"productId"`
	SkuID                string        `json:"skuId"`
	ProductName          string        `json:"productName"`
	SkuName              string        `json:"skuName"`
	ServiceName          string        `json:"serviceName"`
	ServiceID            string        `json:"serviceId"`
	ServiceFamily        string        `json:"serviceFamily"`
	UnitOfMeasure        string        `json:"unitOfMeasure"`
	Type                 string        `json:"type"`
	IsPrimaryMeterRegion bool          `json:"isPrimaryMeterRegion"`
	ArmSkuName           string        `json:"armSkuName"`
	SavingsPlan          []SavingsPlan `json:"savingsPlan,omitempty"`
}

type SavingsPlan struct {
	UnitPrice   float64 `json:"unitPrice"`
	RetailPrice float64 `json:"retailPrice"`
	Term        string  `json:"term"`
}

// RetailPricePage is a single page returned by the API.
type RetailPricePage struct {
	BillingCurrency    string        `json:"BillingCurrency"`
	CustomerEntityID   string        `json:"CustomerEntityId"`
	CustomerEntityType string        `json:"CustomerEntityType"`
	Items              []RetailPrice `json:"Items"`
	NextPageLink       string        `json:"NextPageLink"`
	Count              int           `json:"Count"`
}

const (
	PriceTypeConsumption = "Consumption"
	PriceTypeReservation = "Reservation"
	PriceTypeDevTest     = "DevTestConsumption"
)

// PriceFilter selects items upstream. Empty fields are not filtered on.
type PriceFilter struct {
	ServiceName  string
	Region       string
	SkuName      string // substring match
	ArmSkuName   string
	MeterName    string
	PriceType    string
	ProductName  string // substring match
	CurrencyCode string
	Limit        int
}

// PriceResult is the outcome of a filtered upstream query.
type PriceResult struct {
	Items    []RetailPrice `json:"items"`
	HasMore  bool          `json:"has_more"`
	Currency string        `json:"currency"`
	Filters  []string      `json:"filters"`
}
