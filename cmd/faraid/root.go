package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"faraid-engine/internal/config"
	"faraid-engine/internal/engine"
	"faraid-engine/internal/faraid"
	"faraid-engine/internal/logger"
	"faraid-engine/internal/model"
	"faraid-engine/internal/pricefeed"
)

type rootOptions struct {
	configPath string
	raddPolicy string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "faraid",
		Short:         "Islamic inheritance and Zakat calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (defaults to $FARAID_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.raddPolicy, "radd-policy", "", "exclude-spouse or fail-closed (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print the calculation envelope as JSON")

	cmd.AddCommand(newCalculateCmd(opts), newValidateCmd(opts), newZakatCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return config.FromEnv()
	}
	return config.Load(o.configPath)
}

// newEngine builds the calculation engine the same way the service does.
// Warnings are written to logOut so stdout stays a single table or JSON document.
func (o *rootOptions) newEngine(logOut io.Writer) (*engine.Engine, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if o.raddPolicy != "" {
		cfg.Faraid.RaddPolicy = o.raddPolicy
	}
	policy, err := cfg.RaddPolicy()
	if err != nil {
		return nil, nil, err
	}
	gold, silver, err := cfg.FallbackPrices()
	if err != nil {
		return nil, nil, err
	}

	logs, err := logger.NewWriter("warn", logOut)
	if err != nil {
		return nil, nil, err
	}

	prices := pricefeed.New(pricefeed.Config{
		URL:              cfg.PriceFeed.URL,
		Timeout:          cfg.PriceFeed.Timeout,
		CacheTTL:         cfg.PriceFeed.CacheTTL,
		FallbackCurrency: cfg.PriceFeed.DefaultCurrency,
		FallbackGold:     gold,
		FallbackSilver:   silver,
	}, logs)

	cleanup := func() {
		prices.Close()
		_ = logs.Sync()
	}
	return engine.New(faraid.New(faraid.WithRaddPolicy(policy)), prices, nil), cleanup, nil
}

// parseHeirs turns "relation[=count]" flags into heir inputs with ids
// derived from the relation and position.
func parseHeirs(values []string) ([]model.HeirInput, error) {
	heirs := make([]model.HeirInput, 0, len(values))
	for i, v := range values {
		relation, countText, hasCount := strings.Cut(v, "=")
		count := 1
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(countText))
			if err != nil {
				return nil, fmt.Errorf("heir %q: count must be a whole number", v)
			}
			count = n
		}
		rel := faraid.ParseRelation(relation)
		heirs = append(heirs, model.HeirInput{
			ID:       fmt.Sprintf("%s-%d", rel, i+1),
			Relation: string(rel),
			Count:    count,
		})
	}
	return heirs, nil
}

// decimalValue is a pflag.Value for money and weight flags.
type decimalValue struct {
	d *decimal.Decimal
}

func newDecimalValue(d *decimal.Decimal) *decimalValue {
	return &decimalValue{d: d}
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	parsed, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*v.d = parsed
	return nil
}

func (v *decimalValue) Type() string {
	return "decimal"
}
