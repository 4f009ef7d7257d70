package events

// Sink receives event records. Implementations own their failure handling:
// a sink error must never propagate into request handling, so Append does
// not return one.
type Sink interface {
	Append(rec Record)
}

// MultiSink fans a record out to every configured sink.
type MultiSink []Sink

// Append delivers the record to each sink in order.
func (m MultiSink) Append(rec Record) {
	for _, s := range m {
		if s != nil {
			s.Append(rec)
		}
	}
}

// NopSink discards every record.
type NopSink struct{}

// Append discards the record.
func (NopSink) Append(Record) {}

var _ Sink = MultiSink(nil)
var _ Sink = NopSink{}
