// Package cmd implements the webkit command line.
//
// "serve" runs the HTTP API. The remaining commands expose the same helpers
// offline and print JSON to stdout, so they compose with jq and shell
// scripts:
//   - query: set, remove and decode query strings
//   - merge: deep merge JSON objects
//   - image: resolve image sizes and build placeholders
//   - version: build information
package cmd
