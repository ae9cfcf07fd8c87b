package hitbtc

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/hitbtc/common/crypto"
	"github.com/thrasher-corp/hitbtc/encoding/json"
)

const (
	// DefaultHost is the HitBTC API host
	DefaultHost = "api.hitbtc.com"
	// DefaultVersion is the REST API version
	DefaultVersion = "1"
	// DefaultHTTPTimeout is applied when no HTTP client is supplied
	DefaultHTTPTimeout = 15 * time.Second
)

// Config holds the immutable connection settings for a client
type Config struct {
	Host          string
	Version       string
	HTTPTimeout   time.Duration
	UserAgent     string
	Verbose       bool
	HTTPDebugging bool
	// Proxy routes requests through a proxy, the HTTPClient transport must
	// be an *http.Transport when both are set
	Proxy *url.URL
	// HTTPClient overrides the client built from HTTPTimeout
	HTTPClient *http.Client
}

// DefaultConfig returns the production HitBTC settings
func DefaultConfig() Config {
	return Config{
		Host:        DefaultHost,
		Version:     DefaultVersion,
		HTTPTimeout: DefaultHTTPTimeout,
	}
}

// Credentials holds the API key and the decoded secret. It is immutable once
// created.
type Credentials struct {
	APIKey string
	secret []byte
}

// NewCredentials decodes the base64 encoded secret once and returns the
// credentials used to sign private requests
func NewCredentials(apiKey, apiSecret string) (*Credentials, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, errAPIKeyEmpty)
	}
	if apiSecret == "" {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, errAPISecretEmpty)
	}
	secret, err := crypto.Base64Decode(apiSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: api secret: %w", ErrConfiguration, err)
	}
	return &Credentials{APIKey: apiKey, secret: secret}, nil
}

// Endpoint describes a logical operation
type Endpoint struct {
	Path    string
	Private bool
	Method  string
}

// Request is a fully addressed request ready to be dispatched. It is built
// once per call and discarded after use.
type Request struct {
	Method  string
	URL     string
	Path    string
	Body    string
	Headers map[string]string
	Private bool

	// unsignedBody is the encoding the signature was computed over
	unsignedBody string
}

// Symbol holds a tradable currency pair
type Symbol struct {
	Symbol               string          `json:"symbol"`
	Step                 decimal.Decimal `json:"step"`
	Lot                  decimal.Decimal `json:"lot"`
	Currency             string          `json:"currency"`
	Commodity            string          `json:"commodity"`
	TakeLiquidityRate    decimal.Decimal `json:"takeLiquidityRate"`
	ProvideLiquidityRate decimal.Decimal `json:"provideLiquidityRate"`
}

// Ticker holds ticker information for a symbol
type Ticker struct {
	Last        decimal.Decimal `json:"last"`
	Bid         decimal.Decimal `json:"bid"`
	Ask         decimal.Decimal `json:"ask"`
	High        decimal.Decimal `json:"high"`
	Low         decimal.Decimal `json:"low"`
	Open        decimal.Decimal `json:"open"`
	Volume      decimal.Decimal `json:"volume"`
	VolumeQuote decimal.Decimal `json:"volume_quote"`
	Timestamp   int64           `json:"timestamp"`
}

// OrderBookOptions are the optional formatting parameters for OrderBook
type OrderBookOptions struct {
	// FormatPrice is "string" (default) or "number"
	FormatPrice string
	// FormatAmount is "string" (default) or "number"
	FormatAmount string
	// FormatAmountUnit is "currency" (default) or "lot"
	FormatAmountUnit string
}

// OrderBook holds the asks and bids for a symbol
type OrderBook struct {
	Asks []OrderBookLevel `json:"asks"`
	Bids []OrderBookLevel `json:"bids"`
}

// OrderBookLevel is a single price level, sent as a [price, amount] pair
type OrderBookLevel struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// UnmarshalJSON decodes a [price, amount] pair
func (l *OrderBookLevel) UnmarshalJSON(data []byte) error {
	var pair [2]decimal.Decimal
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	l.Price, l.Amount = pair[0], pair[1]
	return nil
}

// TradesRequest holds the parameters for the public trades endpoint
type TradesRequest struct {
	// From is a trade id or a millisecond timestamp depending on By
	From int64
	// Till is an optional exclusive upper bound
	Till int64
	// By is "trade_id" or "ts"
	By string
	// Sort is "asc" (default) or "desc"
	Sort       string
	StartIndex int
	// MaxResults must be between 1 and 1000
	MaxResults int
}

// Trade holds a public trade
type Trade struct {
	TID    int64           `json:"tid"`
	Date   int64           `json:"date"`
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
	Side   string          `json:"side"`
}

// Balance holds the trading balance of a currency
type Balance struct {
	CurrencyCode string          `json:"currency_code"`
	Cash         decimal.Decimal `json:"cash"`
	Reserved     decimal.Decimal `json:"reserved"`
}

// Order holds an order as returned by the active and recent order endpoints
type Order struct {
	OrderID        string          `json:"orderId"`
	OrderStatus    string          `json:"orderStatus"`
	LastTimestamp  int64           `json:"lastTimestamp"`
	OrderPrice     decimal.Decimal `json:"orderPrice"`
	OrderQuantity  decimal.Decimal `json:"orderQuantity"`
	AvgPrice       decimal.Decimal `json:"avgPrice"`
	QuantityLeaves decimal.Decimal `json:"quantityLeaves"`
	Type           string          `json:"type"`
	TimeInForce    string          `json:"timeInForce"`
	CumQuantity    decimal.Decimal `json:"cumQuantity"`
	ClientOrderID  string          `json:"clientOrderId"`
	Symbol         string          `json:"symbol"`
	Side           string          `json:"side"`
	ExecQuantity   decimal.Decimal `json:"execQuantity"`
}

// UserTrade holds a trade from the private trade history
type UserTrade struct {
	TradeID       int64           `json:"tradeId"`
	ExecPrice     decimal.Decimal `json:"execPrice"`
	Timestamp     int64           `json:"timestamp"`
	OriginalOrder string          `json:"originalOrderId"`
	Fee           decimal.Decimal `json:"fee"`
	ClientOrderID string          `json:"clientOrderId"`
	Symbol        string          `json:"symbol"`
	Side          string          `json:"side"`
	ExecQuantity  decimal.Decimal `json:"execQuantity"`
}

// NewOrder holds the parameters for CreateOrder. ClientOrderID is generated
// when empty.
type NewOrder struct {
	ClientOrderID string
	Symbol        string
	// Side is "buy" or "sell"
	Side  string
	Price decimal.Decimal
	// Quantity is expressed in lots
	Quantity decimal.Decimal
	// Type is "limit" (default) or "market"
	Type string
	// TimeInForce is "GTC" (default), "IOC" or "FOK"
	TimeInForce string
}

// CancelOrderRequest holds the parameters for CancelOrder
type CancelOrderRequest struct {
	ClientOrderID string
	// CancelRequestClientOrderID is generated when empty
	CancelRequestClientOrderID string
	Symbol                     string
	Side                       string
}

// ExecutionReport is returned by order placement and cancellation
type ExecutionReport struct {
	OrderID           string          `json:"orderId"`
	ClientOrderID     string          `json:"clientOrderId"`
	ExecReportType    string          `json:"execReportType"`
	OrderStatus       string          `json:"orderStatus"`
	OrderRejectReason string          `json:"orderRejectReason"`
	Symbol            string          `json:"symbol"`
	Side              string          `json:"side"`
	Timestamp         int64           `json:"timestamp"`
	Price             decimal.Decimal `json:"price"`
	Quantity          decimal.Decimal `json:"quantity"`
	Type              string          `json:"type"`
	TimeInForce       string          `json:"timeInForce"`
	TradeID           string          `json:"tradeId"`
	LastQuantity      decimal.Decimal `json:"lastQuantity"`
	LastPrice         decimal.Decimal `json:"lastPrice"`
	LeavesQuantity    decimal.Decimal `json:"leavesQuantity"`
	CumQuantity       decimal.Decimal `json:"cumQuantity"`
	AveragePrice      decimal.Decimal `json:"averagePrice"`
}
