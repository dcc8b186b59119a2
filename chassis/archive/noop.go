package archive

// NoopArchive discards everything. Used when archival is disabled.
type NoopArchive struct{}

// InitNoopArchive ...
func InitNoopArchive() Archiver {
	return NoopArchive{}
}

// Put ...
func (NoopArchive) Put(key string, body []byte, contentType string) error {
	return nil
}
