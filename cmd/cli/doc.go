// Package cli constructs the banner command-line interface, wiring the Cobra
// root command, the Viper configuration loader, and zap diagnostics around the
// banner printer. Banners go to standard output; diagnostics go to standard
// error.
package cli
