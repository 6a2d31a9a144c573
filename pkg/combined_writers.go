package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes every p to all writers, used to send logs to a file and stdout.
// A write counts as successful when at least one writer took all of p.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.writers = append(cw.writers, w)
		}
	}
	return cw
}

func (cw *CombinedWriter) Len() int {
	return len(cw.writers)
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var errs error
	succeeded := 0
	for _, w := range cw.writers {
		n, err := w.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		succeeded++
	}

	if succeeded == 0 && len(cw.writers) > 0 {
		return 0, errs
	}
	return len(p), errs
}
