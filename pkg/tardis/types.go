package tardis

import "time"

// Response is the generic envelope the API wraps every payload in. The client
// deserializes it but never interprets its contents.
type Response[T any] struct {
	Results T `json:"results"`
}

// InstrumentInfo is one instrument's metadata record as returned by the
// instruments endpoints. The client treats it as opaque; fields are typed
// here purely for the convenience of downstream consumers.
type InstrumentInfo struct {
	ID                 string     `json:"id"`
	Exchange           string     `json:"exchange"`
	BaseCurrency       string     `json:"baseCurrency"`
	QuoteCurrency      string     `json:"quoteCurrency"`
	Type               string     `json:"type"`
	Active             bool       `json:"active"`
	AvailableSince     *time.Time `json:"availableSince,omitempty"`
	AvailableTo        *time.Time `json:"availableTo,omitempty"`
	PriceIncrement     float64    `json:"priceIncrement,omitempty"`
	AmountIncrement    float64    `json:"amountIncrement,omitempty"`
	MinTradeAmount     float64    `json:"minTradeAmount,omitempty"`
	MakerFee           float64    `json:"makerFee,omitempty"`
	TakerFee           float64    `json:"takerFee,omitempty"`
	Inverse            bool       `json:"inverse,omitempty"`
	ContractMultiplier *float64   `json:"contractMultiplier,omitempty"`
	SettlementCurrency string     `json:"settlementCurrency,omitempty"`
	Underlying         string     `json:"underlying,omitempty"`
	Expiry             *time.Time `json:"expiry,omitempty"`
	StrikePrice        *float64   `json:"strikePrice,omitempty"`
	OptionType         string     `json:"optionType,omitempty"`
}
