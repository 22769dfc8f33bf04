package output

import (
	"bufio"
	"io"

	"github.com/rileyhilliard/tfui/internal/logger"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Pump reads r line by line and pushes each line, terminator included, onto
// q tagged with src and run. Invalid UTF-8 is replaced with U+FFFD. It returns when
// the stream ends or a read fails, closing r if it is an io.Closer.
//
// Pump blocks; run it on its own goroutine, one per stream.
func Pump(r io.Reader, src Source, run uint64, q *Queue) {
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	br := bufio.NewReader(transform.NewReader(r, unicode.UTF8.NewDecoder()))
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			q.Push(QueuedLine{Content: line, Source: src, Run: run})
		}
		if err != nil {
			if err != io.EOF {
				logger.Default().Debug("%s pump stopped: %v", src, err)
			}
			return
		}
	}
}
