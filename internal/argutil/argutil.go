// Package argutil provides shared argument-building helpers for CLI
// backends.
package argutil

import "strings"

// ContainsNull reports whether s contains a null byte. exec rejects such
// arguments, so backends drop them instead of failing the launch.
func ContainsNull(s string) bool {
	return strings.ContainsRune(s, '\x00')
}

// Usable reports whether v can be passed as a flag value.
func Usable(v string) bool {
	return v != "" && !ContainsNull(v)
}

// AppendFlag appends flag and value when value is usable.
func AppendFlag(args []string, flag, value string) []string {
	if !Usable(value) {
		return args
	}
	return append(args, flag, value)
}

// AppendMessage appends the message as a positional argument when usable.
func AppendMessage(args []string, message string) []string {
	if !Usable(message) {
		return args
	}
	return append(args, message)
}
