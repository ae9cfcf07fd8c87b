package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/thrasher-corp/hitbtc/config"
	"github.com/thrasher-corp/hitbtc/encoding/json"
	"github.com/thrasher-corp/hitbtc/exchanges/hitbtc"
	"github.com/thrasher-corp/hitbtc/exchanges/request"
	"github.com/urfave/cli/v2"
)

var (
	configPath string
	host       string
	apiVersion string
	apiKey     string
	apiSecret  string
	proxy      string
	timeout    time.Duration
	verbose    bool

	output io.Writer = os.Stdout
)

const defaultTimeout = time.Second * 30

func jsonOutput(in any) error {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, string(j))
	return err
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.LoadFromEnv()
	}
	return config.Load(configPath)
}

// setupClient builds a client from the config file and command line overrides
// and attaches the request timeout to the command context
func setupClient(c *cli.Context, private bool) (*hitbtc.HitBTC, context.CancelFunc, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if host != "" {
		cfg.Host = host
	}
	if apiVersion != "" {
		cfg.Version = apiVersion
	}
	if apiKey != "" {
		cfg.Key = apiKey
	}
	if apiSecret != "" {
		cfg.Secret = apiSecret
	}
	if proxy != "" {
		cfg.Proxy = proxy
	}
	if verbose {
		cfg.Verbose = true
		cfg.Logging.Level = "INFO|WARN|DEBUG|ERROR"
	}
	if err := cfg.CheckConfig(); err != nil {
		return nil, nil, err
	}
	if err := cfg.SetupLogger(); err != nil {
		return nil, nil, err
	}

	var creds *hitbtc.Credentials
	if private {
		if creds, err = cfg.Credentials(); err != nil {
			return nil, nil, err
		}
	}
	client, err := hitbtc.New(cfg.ClientConfig(), creds)
	if err != nil {
		return nil, nil, err
	}

	var cancel context.CancelFunc
	c.Context, cancel = context.WithTimeout(c.Context, timeout)
	if verbose {
		c.Context = request.WithVerbose(c.Context)
	}
	return client, cancel, nil
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "hitbtccli"
	app.Usage = "command line interface for the HitBTC REST API"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to a key.yml file, HITBTC_ environment variables are used when unset",
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "host",
			Usage:       "override the API host",
			Destination: &host,
		},
		&cli.StringFlag{
			Name:        "apiversion",
			Usage:       "override the API version",
			Destination: &apiVersion,
		},
		&cli.StringFlag{
			Name:        "apikey",
			Usage:       "override config API key for request",
			Destination: &apiKey,
		},
		&cli.StringFlag{
			Name:        "apisecret",
			Usage:       "override config API secret for request",
			Destination: &apiSecret,
		},
		&cli.StringFlag{
			Name:        "proxy",
			Usage:       "route requests through a proxy, e.g. http://127.0.0.1:3128",
			Destination: &proxy,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Value:       defaultTimeout,
			Usage:       "the default context timeout value for requests",
			Destination: &timeout,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "log requests and responses",
			Destination: &verbose,
		},
	}
	app.Commands = []*cli.Command{
		serverTimeCommand,
		symbolsCommand,
		tickerCommand,
		orderbookCommand,
		tradesCommand,
		balanceCommand,
		activeOrdersCommand,
		recentOrdersCommand,
		tradeHistoryCommand,
		cancelOrderCommand,
		newOrderCommand,
	}
	return app
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp().RunContext(ctx, os.Args)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
}
