// Converts a Project Wycheproof ECDSA verification test file into the binary
// blob consumed by the crypto regression tests on the non-secure side.
//
// The blob can be placed in the .data section with .incbin, written at
// runtime, or turned into a C array with `xxd -i`.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/trustedfirmware/wpvectors/go/config"
	"github.com/trustedfirmware/wpvectors/go/fetch"
	"github.com/trustedfirmware/wpvectors/go/testvector"
)

var log = logrus.WithField("prefix", "wp-ecdsa-parser")

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "wp-ecdsa-parser"
	app.Usage = "parser for ECDSA verification JSON based test cases from Project Wycheproof"
	app.ArgsUsage = "[test_dir]"
	app.Description = "test_dir is a local directory to look for " + config.DefaultInputName +
		" in, i.e. when --in is not set"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name: "get",
			Usage: "get the test vector from GitHub, " + config.DefaultInputName +
				" unless --remote-name or a trailing file.json argument is given",
		},
		cli.StringFlag{
			Name:  "remote-name",
			Usage: "name of the json test vector to get from GitHub, implies --get",
		},
		cli.StringFlag{
			Name:  "in",
			Usage: "name of the input json file to parse",
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "name of the parsed output binary file",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML file with the options above",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable debug logging",
		},
	}
	app.Action = run
	return app
}

// configFromContext applies the command line on top of the config file, if
// any.
func configFromContext(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if filename := c.String("config"); filename != "" {
		var err error
		if cfg, err = config.Load(filename); err != nil {
			return nil, err
		}
	}
	if c.Bool("get") {
		cfg.FetchRemote = true
	}
	if c.IsSet("remote-name") {
		cfg.RemoteOverrideName = c.String("remote-name")
	}
	if c.IsSet("in") {
		cfg.InputLocation = c.String("in")
	}
	if c.IsSet("out") {
		cfg.OutputLocation = c.String("out")
	}
	if c.NArg() > 0 {
		arg := c.Args().First()
		switch {
		case !cfg.FetchRemote && cfg.RemoteOverrideName == "":
			cfg.TestDir = arg
		case cfg.RemoteOverrideName == "" && path.Ext(arg) == ".json":
			// --get <file.json>
			cfg.RemoteOverrideName = arg
		default:
			return nil, fmt.Errorf("unexpected argument %q when getting the test vector from GitHub", arg)
		}
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := configFromContext(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	plan, err := cfg.Resolve()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	input := plan.Input
	if plan.Fetches() {
		tmp, err := os.CreateTemp("", "wycheproof-*.json")
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		log.Infof("Getting %s", plan.RemoteURL)
		f := fetch.New(fetch.Options{
			Timeout:      cfg.FetchTimeout,
			Retries:      cfg.FetchRetries,
			RetryWaitMin: fetch.DefaultOptions.RetryWaitMin,
			RetryWaitMax: fetch.DefaultOptions.RetryWaitMax,
		})
		if _, err := f.FetchToFile(ctx, plan.RemoteURL, tmp.Name()); err != nil {
			return cli.NewExitError(err, 1)
		}
		input = tmp.Name()
	} else if cfg.TestDir != "" && cfg.InputLocation == "" && cfg.OutputLocation == "" {
		log.Infof("Looking for %s", input)
	}

	n, err := testvector.ConvertFile(input, plan.Output)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log.WithField("output", plan.Output).Debug("Conversion done")
	fmt.Fprintf(c.App.Writer, "Written %d bytes of data (%s)\n", n, humanize.Bytes(uint64(n)))
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
