// Package cli implements the sensordash command-line interface.
//
// Commands are Cobra commands that load settings, build the sensor client
// and hand off to package dashboard:
//
//	sensordash              - Run the dashboard (full screen, or --plain lines)
//	sensordash init         - Create .sensordash.yaml
//	sensordash check        - Fetch once, print readings, exit non-zero on failure
//	sensordash doctor       - Diagnose config, server and terminal problems
//	sensordash config show  - Print the effective configuration
//	sensordash config set   - Change one key in the config file
//	sensordash version      - Print build information
//	sensordash completion   - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --server, --log-file, --verbose, --no-color) live on
// the root command and override the matching config keys for every
// subcommand. --plain belongs to the root command only.
//
// # Logging
//
// Without a log file, logs go to stderr through the colored handler. The
// full-screen dashboard always logs to a file (log.file, or
// ~/.cache/sensordash/sensordash.log) so log lines never draw over it.
//
// # Exit Codes
//
//	0 - success
//	1 - unexpected failure
//	2 - configuration error
//	3 - sensor server unreachable or returned unusable data
package cli
