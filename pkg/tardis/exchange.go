package tardis

import (
	"fmt"
	"sort"
	"strings"
)

// Exchange identifies a trading venue supported by the Tardis API. The set of
// valid values is closed; use ParseExchange to validate external input.
type Exchange string

const (
	ExchangeBinance             Exchange = "binance"
	ExchangeBinanceDelivery     Exchange = "binance-delivery"
	ExchangeBinanceFutures      Exchange = "binance-futures"
	ExchangeBinanceOptions      Exchange = "binance-options"
	ExchangeBinanceUS           Exchange = "binance-us"
	ExchangeBitfinex            Exchange = "bitfinex"
	ExchangeBitfinexDerivatives Exchange = "bitfinex-derivatives"
	ExchangeBitflyer            Exchange = "bitflyer"
	ExchangeBitmex              Exchange = "bitmex"
	ExchangeBitstamp            Exchange = "bitstamp"
	ExchangeBybit               Exchange = "bybit"
	ExchangeBybitOptions        Exchange = "bybit-options"
	ExchangeBybitSpot           Exchange = "bybit-spot"
	ExchangeCoinbase            Exchange = "coinbase"
	ExchangeCryptoCom           Exchange = "crypto-com"
	ExchangeCryptoFacilities    Exchange = "cryptofacilities"
	ExchangeDeribit             Exchange = "deribit"
	ExchangeDydx                Exchange = "dydx"
	ExchangeGateIO              Exchange = "gate-io"
	ExchangeGateIOFutures       Exchange = "gate-io-futures"
	ExchangeGemini              Exchange = "gemini"
	ExchangeHitbtc              Exchange = "hitbtc"
	ExchangeHuobi               Exchange = "huobi"
	ExchangeHuobiDM             Exchange = "huobi-dm"
	ExchangeHuobiDMLinearSwap   Exchange = "huobi-dm-linear-swap"
	ExchangeHuobiDMSwap         Exchange = "huobi-dm-swap"
	ExchangeHyperliquid         Exchange = "hyperliquid"
	ExchangeKraken              Exchange = "kraken"
	ExchangeKucoin              Exchange = "kucoin"
	ExchangeKucoinFutures       Exchange = "kucoin-futures"
	ExchangeOkcoin              Exchange = "okcoin"
	ExchangeOkex                Exchange = "okex"
	ExchangeOkexFutures         Exchange = "okex-futures"
	ExchangeOkexOptions         Exchange = "okex-options"
	ExchangeOkexSwap            Exchange = "okex-swap"
	ExchangePhemex              Exchange = "phemex"
	ExchangePoloniex            Exchange = "poloniex"
	ExchangeUpbit               Exchange = "upbit"
	ExchangeWooX                Exchange = "woo-x"
)

var supportedExchanges = map[Exchange]struct{}{
	ExchangeBinance:             {},
	ExchangeBinanceDelivery:     {},
	ExchangeBinanceFutures:      {},
	ExchangeBinanceOptions:      {},
	ExchangeBinanceUS:           {},
	ExchangeBitfinex:            {},
	ExchangeBitfinexDerivatives: {},
	ExchangeBitflyer:            {},
	ExchangeBitmex:              {},
	ExchangeBitstamp:            {},
	ExchangeBybit:               {},
	ExchangeBybitOptions:        {},
	ExchangeBybitSpot:           {},
	ExchangeCoinbase:            {},
	ExchangeCryptoCom:           {},
	ExchangeCryptoFacilities:    {},
	ExchangeDeribit:             {},
	ExchangeDydx:                {},
	ExchangeGateIO:              {},
	ExchangeGateIOFutures:       {},
	ExchangeGemini:              {},
	ExchangeHitbtc:              {},
	ExchangeHuobi:               {},
	ExchangeHuobiDM:             {},
	ExchangeHuobiDMLinearSwap:   {},
	ExchangeHuobiDMSwap:         {},
	ExchangeHyperliquid:         {},
	ExchangeKraken:              {},
	ExchangeKucoin:              {},
	ExchangeKucoinFutures:       {},
	ExchangeOkcoin:              {},
	ExchangeOkex:                {},
	ExchangeOkexFutures:         {},
	ExchangeOkexOptions:         {},
	ExchangeOkexSwap:            {},
	ExchangePhemex:              {},
	ExchangePoloniex:            {},
	ExchangeUpbit:               {},
	ExchangeWooX:                {},
}

// String returns the canonical wire form used in request paths.
func (e Exchange) String() string { return string(e) }

// Valid reports whether the exchange is part of the supported set.
func (e Exchange) Valid() bool {
	_, ok := supportedExchanges[e]
	return ok
}

// ParseExchange converts a string to an Exchange, rejecting unknown venues.
func ParseExchange(s string) (Exchange, error) {
	e := Exchange(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("unknown exchange %q", s)
	}
	return e, nil
}

// Exchanges returns the supported exchanges in lexical order.
func Exchanges() []Exchange {
	out := make([]Exchange, 0, len(supportedExchanges))
	for e := range supportedExchanges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
