package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-almanac/internal/weather"
)

func newSummarizeCmd() *cobra.Command {
	var (
		lat, lon float64
		output   string
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Print condition counts per calendar day for one location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "text" {
				return fmt.Errorf("unknown output format %q (json, text)", output)
			}

			a, err := bootstrap(nil)
			if err != nil {
				return err
			}
			defer a.close()

			timeout := a.cfg.RequestTimeout
			if timeout <= 0 {
				timeout = 5 * time.Minute
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			records, err := a.service.Summarize(ctx, weather.Location{Latitude: lat, Longitude: lon})
			if err != nil {
				return err
			}
			return writeRecords(os.Stdout, records, output)
		},
	}

	cmd.Flags().Float64Var(&lat, "latitude", 0, "latitude of the location")
	cmd.Flags().Float64Var(&lon, "longitude", 0, "longitude of the location")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, text)")
	_ = cmd.MarkFlagRequired("latitude")
	_ = cmd.MarkFlagRequired("longitude")

	return cmd
}

func writeRecords(w io.Writer, records []weather.AggregationRecord, output string) error {
	if output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, r := range records {
		parts := make([]string, 0, len(r.WeatherCounts))
		for cond, n := range r.WeatherCounts {
			parts = append(parts, fmt.Sprintf("%s=%d", cond, n))
		}
		sort.Strings(parts)
		if _, err := fmt.Fprintf(w, "%02d-%02d  %s\n", r.Month, r.Day, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}
