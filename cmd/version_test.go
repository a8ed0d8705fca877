package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionReportsBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	assert.Contains(t, out, "hearthbreaker "+Version)
	assert.Contains(t, out, Commit)
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}
