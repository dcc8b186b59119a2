package archive

// Config - unified configuration for the archive service
type Config struct {
	Bucket string

	//AWS specified
	Region             string
	CredentialsFile    string
	CredentialsProfile string
}

// Archiver stores submitted design versions for later retrieval.
type Archiver interface {
	Put(key string, body []byte, contentType string) error
}
