package logger

// Exported for white-box tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// EntryMessage returns the message of an entry.
func EntryMessage(e errorEntry) string { return e.message }

// EntryMetadata returns the metadata of an entry.
func EntryMetadata(e errorEntry) map[string]any { return e.metadata }
