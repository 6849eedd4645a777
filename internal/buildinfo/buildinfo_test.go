package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	origVersion, origCommit := buildVersion, buildCommit
	t.Cleanup(func() { buildVersion, buildCommit = origVersion, origCommit })

	buildVersion = "v1.2.3"
	buildCommit = ""

	var buf bytes.Buffer
	PrintBuildData(&buf)

	assert.Equal(t, "Build version: v1.2.3\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
}
