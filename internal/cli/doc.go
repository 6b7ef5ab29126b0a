// Package cli implements the quill command-line interface using cobra.
// Commands set a package-level exit code rather than calling os.Exit so
// deferred cleanup runs.
package cli
