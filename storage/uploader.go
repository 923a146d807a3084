package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Uploader stores uploaded images in S3 when UPLOADS_BUCKET is set, and
// falls back to a local directory otherwise (development).
type Uploader struct {
	bucket string
	dir    string
}

func NewUploader() *Uploader {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "uploads"
	}

	return &Uploader{
		bucket: os.Getenv("UPLOADS_BUCKET"),
		dir:    dir,
	}
}

func NewLocalUploader(dir string) *Uploader {
	return &Uploader{dir: dir}
}

// PostImageKey derives the blob key for a post image: a slug of the post
// title plus a random unique suffix, keeping the original extension.
func PostImageKey(title, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("uploads/post-pictures/%s-%s%s", slug.Make(title), uuid.New(), ext)
}

func ProfilePictureKey(username, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("uploads/profile-pictures/%s-%s%s", slug.Make(username), uuid.New(), ext)
}

func (u *Uploader) UploadPostImage(title, filename string, body io.Reader) (string, error) {
	return u.put(PostImageKey(title, filename), body)
}

func (u *Uploader) UploadProfilePicture(username, filename string, body io.Reader) (string, error) {
	return u.put(ProfilePictureKey(username, filename), body)
}

func (u *Uploader) put(key string, body io.Reader) (string, error) {
	if u.bucket != "" {
		return key, u.putS3(key, body)
	}

	path := filepath.Join(u.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating upload dir: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating upload file: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("error writing upload file: %v", err)
	}

	log.Printf("stored upload locally at %s", path)

	return key, nil
}

func (u *Uploader) putS3(key string, body io.Reader) error {
	sess, err := session.NewSession()
	if err != nil {
		return fmt.Errorf("error creating AWS session: %v", err)
	}

	uploader := s3manager.NewUploader(sess)

	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	})

	if err != nil {
		return fmt.Errorf("error uploading to s3: %v", err)
	}

	return nil
}
