package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kochabx/avatax/errors"
	"github.com/kochabx/avatax/rest"
)

// Exit codes by error kind.
const (
	exitOK        = 0
	exitOther     = 1
	exitConfig    = 2
	exitTransport = 3
	exitEmpty     = 4
)

// flag name -> configuration key
var boundFlags = map[string]string{
	"url":         "client.url",
	"account":     "client.account",
	"license":     "client.license",
	"ca-file":     "client.ca_file",
	"log-level":   "log.level",
	"metrics-out": "metrics.textfile",
	"request-id":  "request_id_header",
}

// NewRootCmd builds the command tree around a fresh viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "avatax",
		Short:         "Send authenticated requests to the tax REST API",
		Version:       rest.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Configuration file (default avatax.yaml in . or $HOME/.avatax)")
	pf.String("url", "", "API base URL")
	pf.String("account", "", "Account number or username")
	pf.String("license", "", "License key or password")
	pf.Bool("insecure", false, "Skip server certificate verification")
	pf.String("ca-file", "", "PEM bundle to verify the server certificate against")
	pf.String("log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	pf.String("metrics-out", "", "Write request metrics to this file in prometheus text format")
	pf.String("request-id", "", "Header carrying a generated request ID, e.g. X-Request-Id")

	for flag, key := range boundFlags {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	cmd.AddCommand(newGetCmd(v), newPostCmd(v))
	return cmd
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		writeError(stderr, err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch errors.KindOf(err) {
	case errors.KindConfig:
		return exitConfig
	case errors.KindTransport:
		return exitTransport
	case errors.KindEmptyResponse:
		return exitEmpty
	default:
		return exitOther
	}
}

type errorOutput struct {
	Kind string `json:"kind"`
	errors.Status
	Cause string `json:"cause,omitempty"`
}

func writeError(w io.Writer, err error) {
	e := errors.FromError(err)
	out := errorOutput{Kind: e.Kind().String(), Status: e.Status}
	if cause := e.GetCause(); cause != nil {
		out.Cause = cause.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
