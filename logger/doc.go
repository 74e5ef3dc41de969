// Package logger provides structured logging on top of zerolog.
//
// Loggers are built from a Config (level, format, output) and tagged with
// a component name. Named loggers live in a registry; Get falls back to the
// global logger tagged with the requested component.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("seq")
//	log.Debug("sequence materialized", logger.Fields(logger.FieldOperator, "sort", logger.FieldCount, 3))
package logger
