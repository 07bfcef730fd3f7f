// Package logger wraps zap for the updater:
//   - a global sugared logger with a console encoder on stdout,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level parsing and configuration,
//   - convenience functions (Infof, WarnKV, ErrorKV, etc.).
//
// Services take a context and log through the logger it carries.
package logger
