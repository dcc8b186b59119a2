package archive

import (
	"bytes"

	log "github.com/sirupsen/logrus"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Archive implementation
type S3Archive struct {
	Bucket string
	client *s3.S3
}

// InitS3Archive ...
func InitS3Archive(cfg Config) Archiver {
	ssn := session.New(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewSharedCredentials(cfg.CredentialsFile, cfg.CredentialsProfile),
	})
	client := s3.New(ssn)
	return &S3Archive{
		client: client,
		Bucket: cfg.Bucket,
	}
}

// Put ...
func (a S3Archive) Put(key string, body []byte, contentType string) error {
	obj := &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket), // Required
		Key:         aws.String(key),      // Required
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}
	_, err := a.client.PutObject(obj)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"event":   "archive_object",
		"archive": "aws_s3",
	}).Debug(key)
	return nil
}
