package entity

type ReservationPrice struct {
	Term                string  `json:"term"`
	SkuName             string  `json:"sku_name"`
	ProductName         string  `json:"product_name"`
	TotalPrice          float64 `json:"total_price"`
	EffectiveHourlyRate float64 `json:"effective_hourly_rate"`
	OnDemandHourlyRate  float64 `json:"on_demand_hourly_rate,omitempty"`
	SavingsPercent      float64 `json:"savings_percent,omitempty"`
}

type ReservationPricing struct {
	ServiceName  string             `json:"service_name"`
	SkuName      string             `json:"sku_name"`
	Region       string             `json:"region"`
	Currency     string             `json:"currency"`
	Reservations []ReservationPrice `json:"reservations"`
}
