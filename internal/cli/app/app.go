// Package app holds the state shared by every mdcatalog command: the loaded
// configuration, the normalizer built from it and the output settings.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mdcatalog/internal/normalize"
	"mdcatalog/pkg/config"
	"mdcatalog/pkg/logger"
	"mdcatalog/pkg/models"
)

// Viper keys bound by the root command
const (
	KeyConfig   = "config"
	KeyJSON     = "json"
	KeyLogLevel = "log_level"
)

// Runtime is what a command needs to run
type Runtime struct {
	Config     *config.Config
	Normalizer normalize.Normalizer
	JSON       bool
	Out        io.Writer
	Now        func() time.Time
}

type runtimeKey struct{}

// Setup loads configuration and attaches a Runtime to cmd's context. It is
// meant for the root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, v *viper.Viper) error {
	rt, err := New(v, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, runtimeKey{}, rt))
	return nil
}

// New builds a Runtime from the bound viper keys
func New(v *viper.Viper, out io.Writer) (*Runtime, error) {
	cfg, err := config.Load(v.GetString(KeyConfig))
	if err != nil {
		return nil, err
	}
	if level := v.GetString(KeyLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	// stdout carries command output
	if strings.EqualFold(strings.TrimSpace(cfg.Logging.Output), "stdout") || cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	logger.Init(cfg.Logging)

	lookup, err := normalize.NewLookup(cfg.Lookup.Languages, cfg.Lookup.Demographics, cfg.Lookup.LinkLabels)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup tables: %w", err)
	}

	return &Runtime{
		Config:     cfg,
		Normalizer: normalize.New(lookup),
		JSON:       v.GetBool(KeyJSON),
		Out:        out,
		Now:        time.Now,
	}, nil
}

// From returns the Runtime attached by Setup
func From(cmd *cobra.Command) (*Runtime, error) {
	if ctx := cmd.Context(); ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok {
			return rt, nil
		}
	}
	return nil, errors.New("command runtime is not initialised")
}

// ReadFile reads a payload file; "-" reads stdin
func ReadFile(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ReadEnvelope reads a catalog envelope file and returns its payload
func ReadEnvelope[T any](cmd *cobra.Command, path string) (T, error) {
	var zero T
	raw, err := ReadFile(path, cmd.InOrStdin())
	if err != nil {
		return zero, err
	}
	resp, err := models.DecodeResponse[T](raw)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	data, err := models.Unwrap(resp)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Render writes v as indented JSON when --json is set, otherwise the text
// produced by text
func (r *Runtime) Render(v interface{}, text func() string) error {
	if r.JSON {
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(r.Out, text())
	return err
}
