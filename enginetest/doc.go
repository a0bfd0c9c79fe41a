// Package enginetest provides compliance test suites for agentcmd backends.
//
// CLI backend compliance tests live in the clitest sub-package.
package enginetest
