package logging

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// fanoutWriter copies every log line to all sinks. A line counts as written
// once any sink accepted it, so a full log disk still leaves stdout output.
type fanoutWriter struct {
	sinks []io.Writer
}

func newFanoutWriter(sinks ...io.Writer) *fanoutWriter {
	return &fanoutWriter{
		sinks: append([]io.Writer(nil), sinks...),
	}
}

func (f *fanoutWriter) Write(p []byte) (int, error) {
	var err error
	accepted := 0
	for i, sink := range f.sinks {
		if _, werr := sink.Write(p); werr != nil {
			err = multierr.Append(err, fmt.Errorf("log sink %d: %w", i, werr))
			continue
		}
		accepted++
	}
	if accepted == 0 {
		return 0, err
	}
	return len(p), err
}
