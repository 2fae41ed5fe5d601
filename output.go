package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type printer struct {
	w       io.Writer
	colored bool
}

func (p printer) JSON(value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cannot encode output: %w", err)
	}

	data = pretty.Pretty(data)

	if p.colored {
		data = pretty.Color(data, nil)
	}

	if _, err := p.w.Write(data); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	return nil
}

func (p printer) Error(err error) {
	c := color.New(color.FgRed, color.Bold)

	if !p.colored {
		c.DisableColor()
	}

	c.Fprintf(p.w, "Error: %v\n", err) // nolint: errcheck
}

func newPrinter(w io.Writer, colored bool) printer {
	return printer{
		w:       w,
		colored: colored,
	}
}
