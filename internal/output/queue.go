package output

import "sync"

// Source identifies which process stream a line came from.
type Source int

const (
	Stdout Source = iota
	Stderr
)

// String returns the stream name.
func (s Source) String() string {
	switch s {
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// QueuedLine is one line of process output, terminator included.
type QueuedLine struct {
	Content string
	Source  Source
	// Run identifies the process run that produced the line, 0 when the
	// line belongs to none.
	Run uint64
}

// drainBatch bounds how many lines sit ready for a single Drain call.
const drainBatch = 1024

// Queue is an unbounded multi-producer, single-consumer line queue. Producers
// never wait on the consumer; the consumer never waits on producers. Lines
// pushed by one producer are drained in push order.
//
// A forwarding goroutine owns the overflow slice, so no lock guards it.
type Queue struct {
	in        chan QueuedLine
	out       chan QueuedLine
	flush     chan chan []QueuedLine
	done      chan struct{}
	closeOnce sync.Once
}

// NewQueue starts the forwarding goroutine. Call Close to stop it.
func NewQueue() *Queue {
	q := &Queue{
		in:    make(chan QueuedLine, 64),
		out:   make(chan QueuedLine, drainBatch),
		flush: make(chan chan []QueuedLine),
		done:  make(chan struct{}),
	}
	go q.forward()
	return q
}

func (q *Queue) forward() {
	var pending []QueuedLine
	for {
		var (
			out  chan QueuedLine
			next QueuedLine
		)
		if len(pending) > 0 {
			out = q.out
			next = pending[0]
		}

		select {
		case line := <-q.in:
			pending = append(pending, line)
		case out <- next:
			pending[0] = QueuedLine{}
			pending = pending[1:]
		case reply := <-q.flush:
			reply <- q.takeIn(pending)
			pending = nil
		case <-q.done:
			return
		}
	}
}

// takeIn appends everything buffered on the input channel to pending.
func (q *Queue) takeIn(pending []QueuedLine) []QueuedLine {
	for {
		select {
		case line := <-q.in:
			pending = append(pending, line)
		default:
			return pending
		}
	}
}

// Push enqueues a line. After Close it is a no-op.
func (q *Queue) Push(line QueuedLine) {
	select {
	case <-q.done:
		return
	default:
	}

	select {
	case q.in <- line:
	case <-q.done:
	}
}

// Drain returns every line currently available without waiting for more.
// It returns nil when nothing is queued.
func (q *Queue) Drain() []QueuedLine {
	var lines []QueuedLine
	for {
		select {
		case line := <-q.out:
			lines = append(lines, line)
		default:
			return lines
		}
	}
}

// DrainAll is Drain plus the lines the forwarder has accepted but not yet
// handed over. Once every producer's Push has returned, DrainAll is
// guaranteed to include their lines. Per-producer order holds even while
// producers keep pushing.
func (q *Queue) DrainAll() []QueuedLine {
	reply := make(chan []QueuedLine)
	select {
	case q.flush <- reply:
	case <-q.done:
		return q.Drain()
	}

	// The forwarder is parked on the unbuffered reply until out is emptied,
	// so out holds only lines older than rest and nothing newer can slip in.
	lines := q.Drain()
	select {
	case rest := <-reply:
		return append(lines, rest...)
	case <-q.done:
		return append(lines, q.Drain()...)
	}
}

// Close stops the forwarder. Lines still queued are discarded.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}
