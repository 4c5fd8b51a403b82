// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, metrics export and debug introspection for hioload-vector
// containers.
//
// Provides:
//   - Flag bitmask and the Config struct-of-booleans form, with validation
//     and strategy resolution
//   - Prometheus collector over container operation counters
//   - Debug probe registry and host platform probes
package control
