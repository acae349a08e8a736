// Package main is the entry point for the pwhlmetrics CLI tool, which ingests
// PWHL league data and computes expected-goals and related analytics.
package main

import "github.com/hockeystats/pwhl-metrics/cmd"

func main() {
	cmd.Execute()
}
