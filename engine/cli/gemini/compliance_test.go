package gemini_test

import (
	"testing"

	"github.com/dmora/agentcmd/engine/cli"
	"github.com/dmora/agentcmd/engine/cli/gemini"
	"github.com/dmora/agentcmd/enginetest/clitest"
)

func TestCompliance(t *testing.T) {
	clitest.RunBackendTests(t, func() cli.Backend {
		return gemini.New()
	})
}
