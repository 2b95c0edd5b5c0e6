package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockIndexBuilder struct {
	count int
	err   error
}

func (m *mockIndexBuilder) Rebuild(context.Context) (int, error) {
	return m.count, m.err
}

func TestIndexCmd_Rebuilds(t *testing.T) {
	oldService := indexService
	SetIndexBuilder(&mockIndexBuilder{count: 42})
	defer func() { indexService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Index rebuilt: 42 vectors")
}

func TestIndexCmd_RebuildError(t *testing.T) {
	oldService := indexService
	SetIndexBuilder(&mockIndexBuilder{err: fmt.Errorf("no chunks")})
	defer func() { indexService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no chunks")
}

func TestIndexCmd_ServiceNotConfigured(t *testing.T) {
	oldService := indexService
	indexService = nil
	defer func() { indexService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "index service not configured")
}
