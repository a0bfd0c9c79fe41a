// Package claude provides the Claude Code CLI backend.
//
// Claude runs in print mode with stream-json output:
//
//	claude -p <message> --output-format stream-json --verbose \
//	    [--permission-mode <mode>] [--model <model>]
//
// The permission mode comes from the launch request, falling back to the
// configured default. [PermissionBypassAll] is accepted as shorthand for
// the CLI's "bypassPermissions". Interactive sessions quit with "/quit".
package claude
