package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kochabx/avatax/config"
	"github.com/kochabx/avatax/errors"
	"github.com/kochabx/avatax/log"
	"github.com/kochabx/avatax/metrics"
	"github.com/kochabx/avatax/rest"
)

func newGetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH",
		Short: "Send a GET request and print the response body",
		Example: `  avatax get '/1.0/tax/47.62,-122.34/get?saleamount=10'
  avatax get /1.0/address/validate?Line1=100+Main+St&PostalCode=98101`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(cmd, v, args[0], nil)
		},
	}
}

func newPostCmd(v *viper.Viper) *cobra.Command {
	c := &cobra.Command{
		Use:   "post PATH",
		Short: "Send a JSON POST request and print the response body",
		Example: `  avatax post /1.0/tax/get --data '{"DocCode":"INV-1"}'
  avatax post /1.0/tax/get --data @invoice.json
  cat invoice.json | avatax post /1.0/tax/get --data -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _ := cmd.Flags().GetString("data")
			body, err := readData(cmd.InOrStdin(), data)
			if err != nil {
				return err
			}
			return send(cmd, v, args[0], bytes.NewReader(body))
		},
	}
	c.Flags().String("data", "", "JSON body, @file to read it from a file, or - for stdin")
	_ = c.MarkFlagRequired("data")
	return c
}

// readData resolves --data into a JSON document.
func readData(stdin io.Reader, data string) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	switch {
	case data == "-":
		body, err = io.ReadAll(stdin)
	case strings.HasPrefix(data, "@"):
		body, err = os.ReadFile(strings.TrimPrefix(data, "@"))
	default:
		body = []byte(data)
	}
	if err != nil {
		return nil, &errors.ConfigError{Field: "data", Value: data, Reason: "request body could not be read", Err: err}
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return nil, &errors.ConfigError{Field: "data", Reason: "request body must be a JSON document"}
	}
	return body, nil
}

func send(cmd *cobra.Command, v *viper.Viper, path string, payload io.Reader) error {
	file, _ := cmd.Flags().GetString("config")
	app, err := config.LoadApp(file, config.WithViper(v))
	if err != nil {
		return err
	}
	if insecure, _ := cmd.Flags().GetBool("insecure"); insecure {
		app.Client.SSLVerify = false
	}

	logger, err := log.NewFromConfig(app.Log)
	if err != nil {
		return &errors.ConfigError{Field: "log", Reason: "logger could not be created", Err: err}
	}
	defer logger.Close()
	log.SetGlobalLogger(logger)

	prom := metrics.New()
	collector, err := metrics.NewClientCollector(prom.Registry())
	if err != nil {
		return err
	}

	opts := []rest.Option{
		rest.WithLogger(logger.Logger),
		rest.WithObserver(collector),
	}
	if app.RequestIDHeader != "" {
		opts = append(opts, rest.WithRequestID(app.RequestIDHeader))
	}

	client := rest.NewWithSettings(app.Client, opts...)
	log.Debug().Str("config", file).Interface("settings", client.Settings().Redacted()).Msg("client ready")

	var body string
	if payload == nil {
		body, err = client.Get(path, rest.WithContext(cmd.Context()))
	} else {
		body, err = client.Post(path, payload, rest.WithContext(cmd.Context()))
	}

	if app.Metrics.Textfile != "" {
		prom.WithBuildInfoCollector()
		if werr := prom.WriteTextfile(app.Metrics.Textfile); werr != nil {
			log.Warn().Err(werr).Str("path", app.Metrics.Textfile).Msg("metrics not written")
		}
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), body)
	return err
}
