package main

import (
	"fmt"

	"github.com/gridwatch/riskgen/pkg/summary"
	"github.com/gridwatch/riskgen/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printFleetSummary(fleet *summary.Fleet) {
	fmt.Println("Fleet Summary")
	fmt.Println("=============")
	fmt.Printf("Observations:     %d (%d assets x %d months)\n", fleet.Rows, fleet.Assets, fleet.Months)
	fmt.Printf("Mean risk index:  %.1f\n", fleet.MeanRisk)
	fmt.Printf("Critical rows:    %d (%.1f%%)\n", fleet.CriticalCount, fleet.CriticalRate*100)

	fmt.Println("\nBy equipment type:")
	for _, ts := range fleet.ByType {
		fmt.Printf("  %-14s %5d obs  mean %5.1f  max %5.1f  critical %d\n",
			ts.Type, ts.Observations, ts.MeanRisk, ts.MaxRisk, ts.CriticalCount)
	}

	fmt.Println("\nBy region:")
	for _, rs := range fleet.ByRegion {
		fmt.Printf("  %-8s %5d obs  critical %d\n", rs.Region, rs.Observations, rs.CriticalCount)
	}

	fmt.Println("\nRecommended actions:")
	for _, ac := range fleet.Actions {
		fmt.Printf("  %-28s %d\n", ac.Action, ac.Count)
	}
}
