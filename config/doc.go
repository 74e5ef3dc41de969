// Package config loads and validates the settings of the sequence engine.
//
// Settings come from a YAML file (<name>.yml or config.yml in the working
// directory or ./config), an optional .env file and the environment, in
// increasing order of precedence. Environment variables use the upper-cased
// key path: LOGGING_LEVEL=debug, SORT_MODE=unstable.
//
// # Usage
//
//	cfg, err := config.Load("orders")
//	if err != nil {
//	    return err
//	}
//	err = seq.Apply(cfg)
package config
