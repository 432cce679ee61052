// Package commands defines the mergespec CLI.
//
// Commands
//
//   - merge    Stitch band files into one spectrum and write it out
//   - overlay  Plot previously merged spectra together
//
// # Configuration
//
// The root command loads the same environment configuration as the API
// server before any subcommand runs. REFERENCE_DIR and PUSHGATEWAY_URL act
// as defaults for --reference-dir and --pushgateway.
package commands
