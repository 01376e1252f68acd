package utils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/banner/internal/utils"
)

type flushRecordingWriter struct {
	bytes.Buffer
	flushCount int
}

func (writer *flushRecordingWriter) Flush() error {
	writer.flushCount++
	return nil
}

func TestNewFlushingWriter(testInstance *testing.T) {
	require.Nil(testInstance, utils.NewFlushingWriter(nil))

	underlyingWriter := &flushRecordingWriter{}
	flushingWriter := utils.NewFlushingWriter(underlyingWriter)
	require.Same(testInstance, flushingWriter, utils.NewFlushingWriter(flushingWriter))

	bytesWritten, writeError := flushingWriter.Write([]byte("====\n"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, 5, bytesWritten)
	require.Equal(testInstance, "====\n", underlyingWriter.String())
	require.Equal(testInstance, 1, underlyingWriter.flushCount)
}

func TestFlushingWriterWithoutFlushSupport(testInstance *testing.T) {
	underlyingWriter := &bytes.Buffer{}
	flushingWriter := utils.NewFlushingWriter(underlyingWriter)

	_, writeError := flushingWriter.Write([]byte("----\n"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, "----\n", underlyingWriter.String())
}
