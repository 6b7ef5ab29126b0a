// Package output renders pipeline results in text, json, and message formats.
package output
