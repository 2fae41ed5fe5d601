package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/9seconds/ipinfo/ipinfolib"
)

const version = ipinfolib.Version

var (
	app = kingpin.New(
		"ipinfo",
		"Command line client of ipinfo.io")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("IPINFO_DEBUG").
		Bool()
	configPath = app.Flag("config", "Path to the hjson config.").
			Short('c').
			Envar("IPINFO_CONFIG").
			String()
	token = app.Flag("token", "ipinfo.io API token.").
		Short('t').
		Envar("IPINFO_TOKEN").
		String()
	noColor = app.Flag("no-color", "Disable colored output.").
		Bool()
	showStats = app.Flag("stats", "Print usage statistics after the command.").
			Bool()

	lookupCommand = app.Command("lookup", "Lookup IP addresses one by one.")
	lookupIPs     = lookupCommand.Arg("ip", "IP address to lookup.").
			Required().
			Strings()

	batchCommand = app.Command("batch", "Lookup IP addresses with batch requests.")
	batchSize    = batchCommand.Flag("batch-size", "How many IPs to send in a single request.").
			Default("1000").
			Int()
	batchFilter = batchCommand.Flag("filter", "Drop IPs which ipinfo.io cannot resolve.").
			Bool()
	batchTimeout = batchCommand.Flag("timeout", "Timeout of a single batch request.").
			Default("5s").
			Duration()
	batchIPs = batchCommand.Arg("ip", "IP address to lookup.").
			Required().
			Strings()

	fieldCommand = app.Command("field", "Lookup separate fields of IP address.")
	fieldIP      = fieldCommand.Arg("ip", "IP address to lookup.").
			Required().
			String()
	fieldNames = fieldCommand.Arg("field", "Field name like city or org.").
			Required().
			Strings()

	clearCacheCommand = app.Command("clear-cache", "Remove cached lookups.")
	clearCacheIP      = clearCacheCommand.Arg("ip", "IP address to remove. Everything is removed if omitted.").
				String()
)

func init() {
	app.Version(version)
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	out := newPrinter(os.Stdout, !*noColor && !color.NoColor)

	if err := run(command, out); err != nil {
		newPrinter(os.Stderr, !*noColor && !color.NoColor).Error(err)
		os.Exit(1)
	}
}

func run(command string, out printer) error {
	ctx, cancel := makeRootContext()
	defer cancel()

	logLevel := zerolog.WarnLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	conf, err := parseConfig(ctx, afero.NewOsFs(), *configPath)
	if err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}

	if *token != "" {
		conf.Token = *token
	}

	cache, closeCache, err := makeCache(conf.Cache)
	if err != nil {
		return err
	}

	defer closeCache()

	client, err := makeClient(conf, cache, newLogger(os.Stderr, logLevel))
	if err != nil {
		return fmt.Errorf("cannot create a client: %w", err)
	}

	switch command {
	case lookupCommand.FullCommand():
		err = runLookup(ctx, client, out)
	case batchCommand.FullCommand():
		err = runBatch(ctx, client, out)
	case fieldCommand.FullCommand():
		err = runField(ctx, client, out)
	case clearCacheCommand.FullCommand():
		err = runClearCache(ctx, client, out)
	default:
		err = fmt.Errorf("unknown command %s", command)
	}

	if err != nil {
		return err
	}

	if *showStats {
		return out.JSON(client.Stats())
	}

	return nil
}

func runLookup(ctx context.Context, client *ipinfolib.Client, out printer) error {
	results := make(map[string]*ipinfolib.LookupResult, len(*lookupIPs))

	for _, ip := range *lookupIPs {
		result, err := client.Lookup(ctx, ip)
		if err != nil {
			return fmt.Errorf("cannot lookup %s: %w", ip, err)
		}

		results[ip] = result
	}

	return out.JSON(results)
}

func runBatch(ctx context.Context, client *ipinfolib.Client, out printer) error {
	results, err := client.LookupBatch(ctx, *batchIPs, *batchSize, *batchFilter, *batchTimeout)
	if err != nil {
		return fmt.Errorf("cannot lookup batch: %w", err)
	}

	return out.JSON(results)
}

func runField(ctx context.Context, client *ipinfolib.Client, out printer) error {
	results, err := client.LookupFields(ctx, *fieldIP, *fieldNames)
	if err != nil {
		return fmt.Errorf("cannot lookup fields of %s: %w", *fieldIP, err)
	}

	return out.JSON(results)
}

func runClearCache(ctx context.Context, client *ipinfolib.Client, out printer) error {
	var (
		removed bool
		err     error
	)

	if *clearCacheIP == "" {
		removed, err = client.ClearAllCache(ctx)
	} else {
		removed, err = client.ClearCache(ctx, *clearCacheIP)
	}

	if err != nil {
		return fmt.Errorf("cannot clear cache: %w", err)
	}

	return out.JSON(map[string]bool{"removed": removed})
}
