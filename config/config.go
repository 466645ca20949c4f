// Package config holds the option surface shared by server and client.
//
// Only one option is recognized by the engine itself: LogErrors. Everything
// else found in the environment is kept verbatim in Extra so embedder
// middleware can read it without the engine validating or interpreting it.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"mini-jsonrpc/codec"
)

// EnvPrefix selects which environment variables LoadEnv picks up.
const EnvPrefix = "JRPC_"

type Options struct {
	// LogErrors controls whether handler faults and undecodable inbound
	// messages are reported through the error-logging hook.
	LogErrors bool

	// Codec selects the wire format for the instance.
	Codec codec.CodecType

	// Extra carries unrecognized configuration keys, unvalidated.
	Extra map[string]string
}

// Default returns the options every instance starts from: error logging on,
// JSON wire format.
func Default() Options {
	return Options{
		LogErrors: true,
		Codec:     codec.CodecTypeJSON,
		Extra:     map[string]string{},
	}
}

// LoadEnv builds Options from the process environment, optionally merging
// .env files first (files that do not exist are skipped). Recognized keys:
//
//	JRPC_LOG_ERRORS  "false"/"0" disables the error-logging hook
//	JRPC_CODEC       "cbor" selects the CBOR codec, anything else JSON
//
// Every other JRPC_-prefixed variable lands in Extra with the prefix
// stripped and the key lowercased.
func LoadEnv(files ...string) Options {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue // absent files are skipped, not reported
		}
		if err := godotenv.Load(f); err != nil {
			log.Printf("Failed to load env file %s: %v", f, err)
		}
	}

	opts := Default()
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		switch name {
		case "log_errors":
			opts.LogErrors = value != "false" && value != "0"
		case "codec":
			if strings.EqualFold(value, "cbor") {
				opts.Codec = codec.CodecTypeCBOR
			}
		default:
			opts.Extra[name] = value
		}
	}
	return opts
}
