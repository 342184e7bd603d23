package pkg

import "io"

type CombinedWriter struct {
	writers []io.Writer
}

// NewCombinedWriter writes the same output to all given writers,
// e.g. to stdout and a rotated log file at the same time
func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

func (w *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, writer := range w.writers {
		if n, err = writer.Write(p); err != nil {
			return n, err
		}
	}
	return len(p), nil
}
