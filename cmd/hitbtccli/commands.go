package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/hitbtc/exchanges/hitbtc"
	"github.com/urfave/cli/v2"
)

var (
	errSymbolRequired = errors.New("symbol is required")
	errSideRequired   = errors.New("side is required")
)

var serverTimeCommand = &cli.Command{
	Name:   "time",
	Usage:  "gets the exchange server time",
	Action: getServerTime,
}

func getServerTime(c *cli.Context) error {
	client, cancel, err := setupClient(c, false)
	if err != nil {
		return err
	}
	defer cancel()

	ts, err := client.ServerTime(c.Context)
	if err != nil {
		return err
	}
	return jsonOutput(map[string]any{
		"timestamp": ts.UnixMilli(),
		"time":      ts.UTC(),
	})
}

var symbolsCommand = &cli.Command{
	Name:      "symbols",
	Usage:     "gets the tradable symbols",
	ArgsUsage: "[symbol...]",
	Action:    getSymbols,
}

func getSymbols(c *cli.Context) error {
	client, cancel, err := setupClient(c, false)
	if err != nil {
		return err
	}
	defer cancel()

	symbols, err := client.Symbols(c.Context, c.Args().Slice()...)
	if err != nil {
		return err
	}
	return jsonOutput(symbols)
}

var symbolFlag = &cli.StringFlag{
	Name:  "symbol",
	Usage: "the symbol to act on, e.g. ETHBTC",
}

// symbolArg returns the --symbol flag, falling back to the first argument
func symbolArg(c *cli.Context) (string, error) {
	symbol := c.String("symbol")
	if symbol == "" {
		symbol = c.Args().First()
	}
	if symbol == "" {
		return "", errSymbolRequired
	}
	return symbol, nil
}

var tickerCommand = &cli.Command{
	Name:      "ticker",
	Usage:     "gets the ticker for a symbol",
	ArgsUsage: "<symbol>",
	Flags:     []cli.Flag{symbolFlag},
	Action:    getTicker,
}

func getTicker(c *cli.Context) error {
	symbol, err := symbolArg(c)
	if err != nil {
		return err
	}
	client, cancel, err := setupClient(c, false)
	if err != nil {
		return err
	}
	defer cancel()

	ticker, err := client.Ticker(c.Context, symbol)
	if err != nil {
		return err
	}
	return jsonOutput(ticker)
}

var orderbookCommand = &cli.Command{
	Name:      "orderbook",
	Usage:     "gets the order book for a symbol",
	ArgsUsage: "<symbol>",
	Flags: []cli.Flag{
		symbolFlag,
		&cli.StringFlag{
			Name:  "amountunit",
			Usage: "currency or lot",
		},
	},
	Action: getOrderbook,
}

func getOrderbook(c *cli.Context) error {
	symbol, err := symbolArg(c)
	if err != nil {
		return err
	}
	client, cancel, err := setupClient(c, false)
	if err != nil {
		return err
	}
	defer cancel()

	ob, err := client.OrderBook(c.Context, symbol, hitbtc.OrderBookOptions{
		FormatAmountUnit: c.String("amountunit"),
	})
	if err != nil {
		return err
	}
	return jsonOutput(ob)
}

var pagingFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "by",
		Usage: "trade_id or ts",
	},
	&cli.StringFlag{
		Name:  "sort",
		Usage: "asc or desc",
	},
	&cli.IntFlag{
		Name:  "start",
		Usage: "the start index",
	},
	&cli.IntFlag{
		Name:  "max",
		Usage: "the maximum number of results, 1 to 1000",
		Value: 1000,
	},
}

var tradesCommand = &cli.Command{
	Name:      "trades",
	Usage:     "gets recent public trades for a symbol",
	ArgsUsage: "<symbol>",
	Flags: append([]cli.Flag{
		symbolFlag,
		&cli.Int64Flag{
			Name:  "from",
			Usage: "trade id or millisecond timestamp to start from",
		},
		&cli.Int64Flag{
			Name:  "till",
			Usage: "trade id or millisecond timestamp to stop at",
		},
	}, pagingFlags...),
	Action: getTrades,
}

func getTrades(c *cli.Context) error {
	symbol, err := symbolArg(c)
	if err != nil {
		return err
	}
	by := c.String("by")
	if by == "" {
		by = "ts"
	}
	client, cancel, err := setupClient(c, false)
	if err != nil {
		return err
	}
	defer cancel()

	trades, err := client.Trades(c.Context, symbol, hitbtc.TradesRequest{
		From:       c.Int64("from"),
		Till:       c.Int64("till"),
		By:         by,
		Sort:       c.String("sort"),
		StartIndex: c.Int("start"),
		MaxResults: c.Int("max"),
	})
	if err != nil {
		return err
	}
	return jsonOutput(trades)
}

var balanceCommand = &cli.Command{
	Name:   "balance",
	Usage:  "gets the trading balance",
	Action: getBalance,
}

func getBalance(c *cli.Context) error {
	client, cancel, err := setupClient(c, true)
	if err != nil {
		return err
	}
	defer cancel()

	balances, err := client.Balance(c.Context)
	if err != nil {
		return err
	}
	return jsonOutput(balances)
}

var activeOrdersCommand = &cli.Command{
	Name:      "activeorders",
	Usage:     "gets open orders",
	ArgsUsage: "[symbol...]",
	Action:    getActiveOrders,
}

func getActiveOrders(c *cli.Context) error {
	client, cancel, err := setupClient(c, true)
	if err != nil {
		return err
	}
	defer cancel()

	orders, err := client.ActiveOrders(c.Context, c.Args().Slice()...)
	if err != nil {
		return err
	}
	return jsonOutput(orders)
}

var symbolsFlag = &cli.StringFlag{
	Name:  "symbols",
	Usage: "comma separated symbols to filter by",
}

func historyRequest(c *cli.Context) hitbtc.HistoryRequest {
	r := hitbtc.HistoryRequest{
		By:         c.String("by"),
		Sort:       c.String("sort"),
		StartIndex: c.Int("start"),
		MaxResults: c.Int("max"),
	}
	if s := c.String("symbols"); s != "" {
		r.Symbols = strings.Split(s, ",")
	}
	return r
}

var recentOrdersCommand = &cli.Command{
	Name:   "recentorders",
	Usage:  "gets recent orders",
	Flags:  append([]cli.Flag{symbolsFlag}, pagingFlags...),
	Action: getRecentOrders,
}

func getRecentOrders(c *cli.Context) error {
	client, cancel, err := setupClient(c, true)
	if err != nil {
		return err
	}
	defer cancel()

	r := historyRequest(c)
	r.By = ""
	orders, err := client.RecentOrders(c.Context, r)
	if err != nil {
		return err
	}
	return jsonOutput(orders)
}

var tradeHistoryCommand = &cli.Command{
	Name:   "tradehistory",
	Usage:  "gets the account trade history",
	Flags:  append([]cli.Flag{symbolsFlag}, pagingFlags...),
	Action: getTradeHistory,
}

func getTradeHistory(c *cli.Context) error {
	client, cancel, err := setupClient(c, true)
	if err != nil {
		return err
	}
	defer cancel()

	trades, err := client.TradeHistory(c.Context, historyRequest(c))
	if err != nil {
		return err
	}
	return jsonOutput(trades)
}

var sideFlag = &cli.StringFlag{
	Name:  "side",
	Usage: "buy or sell",
}

var clientOrderIDFlag = &cli.StringFlag{
	Name:  "clientorderid",
	Usage: "the client order id",
}

var cancelOrderCommand = &cli.Command{
	Name:  "cancelorder",
	Usage: "cancels an order by client order id",
	Flags: []cli.Flag{
		clientOrderIDFlag,
		symbolFlag,
		sideFlag,
	},
	Action: cancelOrder,
}

func cancelOrder(c *cli.Context) error {
	symbol, err := symbolArg(c)
	if err != nil {
		return err
	}
	if c.String("side") == "" {
		return errSideRequired
	}
	client, cancel, err := setupClient(c, true)
	if err != nil {
		return err
	}
	defer cancel()

	report, err := client.CancelOrder(c.Context, hitbtc.CancelOrderRequest{
		ClientOrderID: c.String("clientorderid"),
		Symbol:        symbol,
		Side:          c.String("side"),
	})
	if err != nil {
		return err
	}
	return jsonOutput(report)
}

var newOrderCommand = &cli.Command{
	Name:  "neworder",
	Usage: "places a new order",
	Flags: []cli.Flag{
		clientOrderIDFlag,
		symbolFlag,
		sideFlag,
		&cli.StringFlag{
			Name:  "price",
			Usage: "the limit price",
		},
		&cli.StringFlag{
			Name:  "quantity",
			Usage: "the quantity in lots",
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "limit or market",
			Value: "limit",
		},
		&cli.StringFlag{
			Name:  "timeinforce",
			Usage: "GTC, IOC or FOK",
		},
	},
	Action: newOrder,
}

func newOrder(c *cli.Context) error {
	symbol, err := symbolArg(c)
	if err != nil {
		return err
	}
	if c.String("side") == "" {
		return errSideRequired
	}
	quantity, err := decimal.NewFromString(c.String("quantity"))
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	var price decimal.Decimal
	if p := c.String("price"); p != "" {
		if price, err = decimal.NewFromString(p); err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
	}
	client, cancel, err := setupClient(c, true)
	if err != nil {
		return err
	}
	defer cancel()

	report, err := client.CreateOrder(c.Context, hitbtc.NewOrder{
		ClientOrderID: c.String("clientorderid"),
		Symbol:        symbol,
		Side:          c.String("side"),
		Price:         price,
		Quantity:      quantity,
		Type:          c.String("type"),
		TimeInForce:   c.String("timeinforce"),
	})
	if err != nil {
		return err
	}
	return jsonOutput(report)
}
