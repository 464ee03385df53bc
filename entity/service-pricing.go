package entity

// ServicePricing is the body of GET /api/pricing/azure-service.
type ServicePricing struct {
	Service string  `json:"service"`
	Pricing Pricing `json:"pricing"`
}

type Pricing struct {
	RetailPrice string `json:"retail_price"`
}

// AdditionalServices is the body of GET /api/pricing/azure-additional-services.
type AdditionalServices struct {
	Services []ServicePrice `json:"services"`
}

type ServicePrice struct {
	Service     string `json:"service"`
	RetailPrice string `json:"retail_price"`
}

// CatalogEntry names a service reported by the catalog endpoints. A non-empty
// RetailPrice makes the entry static.
type CatalogEntry struct {
	Name        string  `yaml:"name" json:"name"`
	ServiceName string  `yaml:"service_name" json:"service_name"`
	SkuName     string  `yaml:"sku_name" json:"sku_name,omitempty"`
	ArmSkuName  string  `yaml:"arm_sku_name" json:"arm_sku_name,omitempty"`
	MeterName   string  `yaml:"meter_name" json:"meter_name,omitempty"`
	Region      string  `yaml:"region" json:"region,omitempty"`
	PriceType   string  `yaml:"price_type" json:"price_type,omitempty"`
	Quantity    float64 `yaml:"quantity" json:"quantity,omitempty"`
	RetailPrice string  `yaml:"retail_price" json:"retail_price,omitempty"`
}

func (c CatalogEntry) IsStatic() bool {
	return c.RetailPrice != ""
}
