// Package main is the entry point for the playoffodds CLI tool, which replays
// historical game logs to estimate the chance of reaching the division series
// from a given win percentage at a given point in the season.
package main

import "github.com/pable/go-playoff-odds/cmd"

func main() {
	cmd.Execute()
}
