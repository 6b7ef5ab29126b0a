// Command quill generates commit messages from staged git changes.
package main
