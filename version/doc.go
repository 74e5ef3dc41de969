// Package version reports the build of the engine. It is used as the
// service version of the OpenTelemetry resource and as the default
// settings version.
//
// Values can be pinned at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/lazyseq/version.Version=v1.2.0"
//
// Otherwise the module version is read from the build info of the binary
// that links the engine.
package version
