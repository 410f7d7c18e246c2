package utils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supertui/dimigrate/internal/utils"
)

type recordingFlushWriter struct {
	buffer     bytes.Buffer
	flushCount int
}

func (writer *recordingFlushWriter) Write(data []byte) (int, error) {
	return writer.buffer.Write(data)
}

func (writer *recordingFlushWriter) Flush() error {
	writer.flushCount++
	return nil
}

func TestFlushingWriterFlushesAfterEachWrite(testInstance *testing.T) {
	recordingWriter := &recordingFlushWriter{}
	flushingWriter := utils.NewFlushingWriter(recordingWriter)

	bytesWritten, writeError := flushingWriter.Write([]byte("Processing: TodoWidget.cs\n"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, 26, bytesWritten)
	require.Equal(testInstance, 1, recordingWriter.flushCount)

	_, secondWriteError := flushingWriter.Write([]byte("done\n"))
	require.NoError(testInstance, secondWriteError)
	require.Equal(testInstance, 2, recordingWriter.flushCount)
	require.Equal(testInstance, "Processing: TodoWidget.cs\ndone\n", recordingWriter.buffer.String())
}

func TestFlushingWriterPassesThroughPlainWriters(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	flushingWriter := utils.NewFlushingWriter(outputBuffer)

	_, writeError := flushingWriter.Write([]byte("plain"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, "plain", outputBuffer.String())
}

func TestFlushingWriterDoesNotDoubleWrap(testInstance *testing.T) {
	wrappedWriter := utils.NewFlushingWriter(&bytes.Buffer{})
	require.Same(testInstance, wrappedWriter, utils.NewFlushingWriter(wrappedWriter))
}

func TestFlushingWriterHandlesNilWriter(testInstance *testing.T) {
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
}
