package hitbtc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/hitbtc/exchanges/nonce"
	"github.com/thrasher-corp/hitbtc/exchanges/params"
	"github.com/thrasher-corp/hitbtc/exchanges/request"
	"github.com/thrasher-corp/hitbtc/log"
)

const (
	exchangeName = "HitBTC"

	// Public
	apiTime      = "time"
	apiSymbols   = "symbols"
	apiTicker    = "ticker"
	apiOrderbook = "orderbook"
	apiTrades    = "trades"

	// Authenticated
	apiBalance      = "balance"
	apiActiveOrders = "orders/active"
	apiRecentOrders = "orders/recent"
	apiCancelOrder  = "cancel_order"
	apiTradeHistory = "trades"
	apiNewOrder     = "new_order"

	symbolLength   = 6
	maxResultLimit = 1000
)

// HitBTC is a client for the HitBTC REST API. It is immutable after New and
// safe for concurrent use.
type HitBTC struct {
	Name      string
	cfg       Config
	creds     *Credentials
	nonce     *nonce.Generator
	requester *request.Requester
}

// Option configures optional client collaborators
type Option func(*HitBTC)

// WithNonceGenerator replaces the wall clock nonce generator
func WithNonceGenerator(g *nonce.Generator) Option {
	return func(h *HitBTC) {
		h.nonce = g
	}
}

// New returns a client for the supplied configuration. creds may be nil when
// only public endpoints are used.
func New(cfg Config, creds *Credentials, opts ...Option) (*HitBTC, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if err := checkHost(cfg.Host); err != nil {
		return nil, err
	}
	if strings.Contains(cfg.Version, "/") || checkPath(cfg.Version) != nil {
		return nil, fmt.Errorf("%w: %w: %q", ErrConfiguration, errInvalidVersion, cfg.Version)
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = DefaultHTTPTimeout
		}
		client = &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	requester, err := request.New(exchangeName, client, request.WithUserAgent(cfg.UserAgent))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if cfg.Proxy != nil {
		if err := requester.SetProxy(cfg.Proxy); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	h := &HitBTC{
		Name:      exchangeName,
		cfg:       cfg,
		creds:     creds,
		nonce:     nonce.NewGenerator(nil),
		requester: requester,
	}
	for _, o := range opts {
		o(h)
	}
	return h, nil
}

// Config returns a copy of the client configuration
func (h *HitBTC) Config() Config {
	return h.cfg
}

func checkHost(host string) error {
	u, err := url.Parse("//" + host)
	if err != nil || u.Host != host || u.Path != "" || u.User != nil || strings.ContainsAny(host, " \t") {
		return fmt.Errorf("%w: %w: %q", ErrConfiguration, errInvalidHost, host)
	}
	return nil
}

// CallPublic sends an unsigned GET request to a public endpoint
func (h *HitBTC) CallPublic(ctx context.Context, path string, p *params.Values) (*Response, error) {
	req, err := h.BuildPublic(path, p)
	if err != nil {
		return nil, err
	}
	return h.Send(ctx, req)
}

// CallPrivate sends a signed request to a trading endpoint
func (h *HitBTC) CallPrivate(ctx context.Context, path string, p *params.Values, method string) (*Response, error) {
	req, err := h.BuildPrivate(path, p, method)
	if err != nil {
		return nil, err
	}
	return h.Send(ctx, req)
}

// Call routes an endpoint descriptor to the public or private transport
func (h *HitBTC) Call(ctx context.Context, ep Endpoint, p *params.Values) (*Response, error) {
	if ep.Private {
		method := ep.Method
		if method == "" {
			method = http.MethodGet
		}
		return h.CallPrivate(ctx, ep.Path, p, method)
	}
	return h.CallPublic(ctx, ep.Path, p)
}

// Send dispatches a built request and normalises the response. The returned
// error is only set when the round trip could not be completed; decoding and
// application failures are carried on the Response.
func (h *HitBTC) Send(ctx context.Context, req *Request) (*Response, error) {
	item := &request.Item{
		Method:        req.Method,
		Path:          req.URL,
		Headers:       req.Headers,
		Verbose:       h.cfg.Verbose,
		HTTPDebugging: h.cfg.HTTPDebugging,
	}
	if req.Body != "" {
		item.Body = strings.NewReader(req.Body)
	}
	raw, err := h.requester.SendPayload(ctx, item)
	if err != nil {
		return nil, err
	}
	resp := Normalize(req.Private, raw)
	if f := resp.Failure(); f != nil && request.IsVerbose(ctx, h.cfg.Verbose) {
		log.Debugf(log.ExchangeSys, "%s %s %s: %v", h.Name, req.Method, req.Path, f)
	}
	return resp, nil
}

// Public Market Data

// ServerTime returns the exchange server time
func (h *HitBTC) ServerTime(ctx context.Context) (time.Time, error) {
	resp, err := h.Call(ctx, Endpoint{Path: apiTime}, nil)
	if err != nil {
		return time.Time{}, err
	}
	var ts int64
	if err := resp.Decode(&ts, "timestamp"); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ts), nil
}

// Symbols returns the tradable symbols, limited to filter when supplied
func (h *HitBTC) Symbols(ctx context.Context, filter ...string) ([]Symbol, error) {
	resp, err := h.Call(ctx, Endpoint{Path: apiSymbols}, nil)
	if err != nil {
		return nil, err
	}
	var symbols []Symbol
	if err := resp.Decode(&symbols, "symbols"); err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return symbols, nil
	}
	want := make(map[string]struct{}, len(filter))
	for i := range filter {
		want[strings.ToUpper(filter[i])] = struct{}{}
	}
	matched := make([]Symbol, 0, len(filter))
	for i := range symbols {
		if _, ok := want[symbols[i].Symbol]; ok {
			matched = append(matched, symbols[i])
		}
	}
	return matched, nil
}

// Ticker returns ticker information for a symbol
func (h *HitBTC) Ticker(ctx context.Context, symbol string) (*Ticker, error) {
	s, err := checkSymbol(symbol)
	if err != nil {
		return nil, err
	}
	resp, err := h.Call(ctx, Endpoint{Path: s + "/" + apiTicker}, nil)
	if err != nil {
		return nil, err
	}
	var t Ticker
	return &t, resp.Decode(&t)
}

// OrderBook returns the order book for a symbol
func (h *HitBTC) OrderBook(ctx context.Context, symbol string, opts OrderBookOptions) (*OrderBook, error) {
	s, err := checkSymbol(symbol)
	if err != nil {
		return nil, err
	}
	p := params.New()
	if opts.FormatPrice != "" {
		p.Set("format_price", opts.FormatPrice)
	}
	if opts.FormatAmount != "" {
		p.Set("format_amount", opts.FormatAmount)
	}
	if opts.FormatAmountUnit != "" {
		p.Set("format_amount_unit", opts.FormatAmountUnit)
	}
	resp, err := h.Call(ctx, Endpoint{Path: s + "/" + apiOrderbook}, p)
	if err != nil {
		return nil, err
	}
	var ob OrderBook
	return &ob, resp.Decode(&ob)
}

// Trades returns public trades for a symbol
func (h *HitBTC) Trades(ctx context.Context, symbol string, r TradesRequest) ([]Trade, error) {
	s, err := checkSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if r.By != "trade_id" && r.By != "ts" {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, errInvalidTradesBy)
	}
	if err := checkMaxResults(r.MaxResults); err != nil {
		return nil, err
	}
	p := params.New()
	p.Set("from", r.From)
	if r.Till > 0 {
		p.Set("till", r.Till)
	}
	p.Set("by", r.By)
	if r.Sort != "" {
		p.Set("sort", r.Sort)
	}
	p.Set("start_index", r.StartIndex)
	p.Set("max_results", r.MaxResults)
	p.Set("format_item", "object")
	resp, err := h.Call(ctx, Endpoint{Path: s + "/" + apiTrades}, p)
	if err != nil {
		return nil, err
	}
	var trades []Trade
	return trades, resp.Decode(&trades, "trades")
}

// Trading

// Balance returns the trading balance of every currency
func (h *HitBTC) Balance(ctx context.Context) ([]Balance, error) {
	resp, err := h.Call(ctx, Endpoint{Path: apiBalance, Private: true, Method: http.MethodGet}, nil)
	if err != nil {
		return nil, err
	}
	var balances []Balance
	return balances, resp.Decode(&balances, "balance")
}

// ActiveOrders returns open orders, limited to symbols when supplied
func (h *HitBTC) ActiveOrders(ctx context.Context, symbols ...string) ([]Order, error) {
	p := params.New()
	if len(symbols) > 0 {
		joined, err := joinSymbols(symbols)
		if err != nil {
			return nil, err
		}
		p.Set("symbols", joined)
	}
	resp, err := h.Call(ctx, Endpoint{Path: apiActiveOrders, Private: true, Method: http.MethodGet}, p)
	if err != nil {
		return nil, err
	}
	var orders []Order
	return orders, resp.Decode(&orders, "orders")
}

// RecentOrders returns recently closed and open orders
func (h *HitBTC) RecentOrders(ctx context.Context, r HistoryRequest) ([]Order, error) {
	p, err := r.params()
	if err != nil {
		return nil, err
	}
	resp, err := h.Call(ctx, Endpoint{Path: apiRecentOrders, Private: true, Method: http.MethodGet}, p)
	if err != nil {
		return nil, err
	}
	var orders []Order
	return orders, resp.Decode(&orders, "orders")
}

// TradeHistory returns the account's own trades
func (h *HitBTC) TradeHistory(ctx context.Context, r HistoryRequest) ([]UserTrade, error) {
	if r.By == "" {
		r.By = "ts"
	}
	p, err := r.params()
	if err != nil {
		return nil, err
	}
	resp, err := h.Call(ctx, Endpoint{Path: apiTradeHistory, Private: true, Method: http.MethodGet}, p)
	if err != nil {
		return nil, err
	}
	var trades []UserTrade
	return trades, resp.Decode(&trades, "trades")
}

// CancelOrder cancels an open order by its client order id
func (h *HitBTC) CancelOrder(ctx context.Context, r CancelOrderRequest) (*ExecutionReport, error) {
	if r.ClientOrderID == "" {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, errOrderIDRequired)
	}
	s, err := checkSymbol(r.Symbol)
	if err != nil {
		return nil, err
	}
	if err := checkSide(r.Side); err != nil {
		return nil, err
	}
	cancelID := r.CancelRequestClientOrderID
	if cancelID == "" {
		if cancelID, err = newClientOrderID(); err != nil {
			return nil, err
		}
	}
	p := params.New()
	p.Set("clientOrderId", r.ClientOrderID)
	p.Set("cancelRequestClientOrderId", cancelID)
	p.Set("symbol", s)
	p.Set("side", r.Side)
	resp, err := h.Call(ctx, Endpoint{Path: apiCancelOrder, Private: true, Method: http.MethodPost}, p)
	if err != nil {
		return nil, err
	}
	var report ExecutionReport
	return &report, resp.Decode(&report, "ExecutionReport")
}

// CreateOrder places a new order
func (h *HitBTC) CreateOrder(ctx context.Context, o NewOrder) (*ExecutionReport, error) {
	s, err := checkSymbol(o.Symbol)
	if err != nil {
		return nil, err
	}
	if err := checkSide(o.Side); err != nil {
		return nil, err
	}
	if !o.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, errInvalidQuantity)
	}
	orderType := o.Type
	if orderType == "" {
		orderType = "limit"
	}
	if orderType == "limit" && !o.Price.IsPositive() {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, errPriceRequired)
	}
	clientOrderID := o.ClientOrderID
	if clientOrderID == "" {
		if clientOrderID, err = newClientOrderID(); err != nil {
			return nil, err
		}
	}

	p := params.New()
	p.Set("clientOrderId", clientOrderID)
	p.Set("symbol", s)
	p.Set("side", o.Side)
	if orderType == "limit" {
		p.Set("price", o.Price)
	}
	p.Set("quantity", o.Quantity)
	p.Set("type", orderType)
	if o.TimeInForce != "" {
		p.Set("timeInForce", o.TimeInForce)
	}
	resp, err := h.Call(ctx, Endpoint{Path: apiNewOrder, Private: true, Method: http.MethodPost}, p)
	if err != nil {
		return nil, err
	}
	var report ExecutionReport
	return &report, resp.Decode(&report, "ExecutionReport")
}

// HistoryRequest holds the paging parameters shared by the recent orders and
// trade history endpoints
type HistoryRequest struct {
	// By is "trade_id" or "ts", used by the trade history only
	By         string
	Sort       string
	StartIndex int
	// MaxResults defaults to 1000
	MaxResults int
	Symbols    []string
}

func (r HistoryRequest) params() (*params.Values, error) {
	p := params.New()
	if r.By != "" {
		if r.By != "trade_id" && r.By != "ts" {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, errInvalidTradesBy)
		}
		p.Set("by", r.By)
	}
	if r.Sort != "" {
		p.Set("sort", r.Sort)
	}
	maxResults := r.MaxResults
	if maxResults == 0 {
		maxResults = maxResultLimit
	}
	if err := checkMaxResults(maxResults); err != nil {
		return nil, err
	}
	p.Set("start_index", r.StartIndex)
	p.Set("max_results", maxResults)
	if len(r.Symbols) > 0 {
		joined, err := joinSymbols(r.Symbols)
		if err != nil {
			return nil, err
		}
		p.Set("symbols", joined)
	}
	return p, nil
}

// checkSymbol validates a market symbol and returns it upper-cased
func checkSymbol(symbol string) (string, error) {
	if len(symbol) != symbolLength {
		return "", fmt.Errorf("%w: %w: %q", ErrConfiguration, errInvalidSymbol, symbol)
	}
	return strings.ToUpper(symbol), nil
}

func joinSymbols(symbols []string) (string, error) {
	checked := make([]string, len(symbols))
	for i := range symbols {
		s, err := checkSymbol(symbols[i])
		if err != nil {
			return "", err
		}
		checked[i] = s
	}
	return strings.Join(checked, ","), nil
}

func checkSide(side string) error {
	if side != "buy" && side != "sell" {
		return fmt.Errorf("%w: %w: %q", ErrConfiguration, errInvalidOrderSide, side)
	}
	return nil
}

func checkMaxResults(n int) error {
	if n < 1 || n > maxResultLimit {
		return fmt.Errorf("%w: %w", ErrConfiguration, errMaxResults)
	}
	return nil
}

func newClientOrderID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}
