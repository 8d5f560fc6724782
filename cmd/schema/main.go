package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedpress/pkg/config"
)

type options struct {
	Output string `short:"o" long:"output" default:"schema.json" description:"schema file to write"`
	Check  bool   `long:"check" description:"fail if the schema file is out of date instead of writing it"`
}

// errOutdated is returned in check mode when the file differs from the generated schema
var errOutdated = errors.New("schema is out of date")

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	lgr.Setup(lgr.Msec)

	if err := run(opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	data, err := generate()
	if err != nil {
		return err
	}

	if opts.Check {
		current, err := os.ReadFile(opts.Output)
		if err != nil {
			return fmt.Errorf("read %s: %w", opts.Output, err)
		}
		if !bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(data)) {
			return fmt.Errorf("%s: %w, run go generate ./pkg/config", opts.Output, errOutdated)
		}
		lgr.Printf("[INFO] schema %s is up to date", opts.Output)
		return nil
	}

	if err := os.WriteFile(opts.Output, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}
	lgr.Printf("[INFO] schema generated at %s", opts.Output)
	return nil
}

// generate makes indented json schema of the config
func generate() ([]byte, error) {
	schema, err := config.GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("reflect config: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
