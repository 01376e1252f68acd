// Package utils exposes the plumbing shared by the banner command.
//
// It houses ConfigurationLoader and LoggerFactory abstractions that integrate
// Viper, environment variables, and zap logging, along with the FlushingWriter
// used as the banner output sink.
package utils
