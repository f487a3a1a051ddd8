package tracing

// Span names.
const (
	SpanSave          = "document.save"
	SpanLoad          = "document.load"
	SpanJournalRecord = "journal.record"
	SpanJournalClear  = "journal.clear"
	SpanJournalReplay = "journal.pending"
	SpanJournalAdopt  = "journal.adopt"
)

// Span attribute keys.
const (
	AttrFilePath  = "file.path"
	AttrBytes     = "file.bytes"
	AttrChars     = "buffer.chars"
	AttrSessionID = "session.id"
	AttrOpKind    = "journal.op"
	AttrOpCount   = "journal.ops"
)
