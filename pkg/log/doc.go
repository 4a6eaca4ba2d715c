// Package log provides the structured, context-aware logger used across the
// wallet packages, the verifier service and the CLI.
//
// Three implementations of Logger are provided:
//
//   - ZapLogger: backed by Uber's zap, with console, logfmt and json encoders
//   - NoopLogger: discards all messages
//   - SpanLogger: records every message to a trace span as well as a wrapped logger
//
// # Key material
//
// Every implementation routes its key-value pairs through Redact. Values that
// implement Redactor (account.PrivateKey and account.ViewKey do) are printed in
// their redacted form, and values stored under keys such as "private_key",
// "view_key", "passphrase" or "mnemonic" are replaced with RedactedValue:
//
//	logger.Info("key imported", "key", pk, "address", pk.Address())
//	// key=APrivateKey1[REDACTED] address=aleo1...
//
// # Context integration
//
//	ctx, span := tracer.Start(ctx, "verify")
//	defer span.End()
//
//	ctx = log.SetContextLogger(ctx, logger)
//	log.FromContext(ctx).Info("signature checked", "valid", ok)
//
// # Environment configuration
//
//   - LOG_FORMAT: console, logfmt or json
//   - LOG_LEVEL: debug, info, warn, error or fatal
//   - LOG_OUTPUT: stderr, stdout or a file path
package log
