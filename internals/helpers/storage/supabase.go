package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"maktabi_backend/internals/configs"
)

// Buckets used by the office. Files are referenced from rows by the opaque
// object path inside the bucket.
const (
	BucketCaseDocuments = "case-documents"
	BucketReceipts      = "receipts"
	BucketClientPhotos  = "client-photos"
)

// Client talks to Supabase Storage over its REST API with the service-role
// key. Constructed once in main and injected into the controllers that
// handle uploads.
type Client struct {
	ProjectURL string
	ServiceKey string
	HTTP       *http.Client
}

func NewFromEnv() *Client {
	return &Client{
		ProjectURL: configs.SupabaseProjectURL,
		ServiceKey: configs.SupabaseServiceKey,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Client) Upload(bucket, objectPath, contentType string, data []byte) error {
	if s.ProjectURL == "" || s.ServiceKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL أو SUPABASE_SERVICE_ROLE_KEY غير مضبوط")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.ProjectURL, bucket, objectPath)
	req, err := http.NewRequest(http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (s *Client) Delete(bucket, objectPath string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.ProjectURL, bucket, objectPath)
	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (s *Client) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.ProjectURL, bucket, url.PathEscape(objectPath))
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filename, "_")
}

// ObjectName builds a collision-free object path: <folder>/<date>-<uuid>-<name>.
func ObjectName(folder, originalFilename string) string {
	return fmt.Sprintf("%s/%s-%s-%s",
		folder,
		time.Now().Format("20060102"),
		uuid.New().String(),
		sanitizeFilename(originalFilename),
	)
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return buf.Bytes(), nil
}

// Uploaded describes a stored object. ThumbURL is set only for image
// payloads (small webp preview next to the object).
type Uploaded struct {
	Path     string
	URL      string
	Size     int64
	ThumbURL string
}

const maxUploadSize = int64(10 * 1024 * 1024)

// UploadFile stores a form file in the bucket. Image payloads are re-encoded
// to webp first (smaller, uniform format); everything else is stored as-is.
func (s *Client) UploadFile(bucket, folder string, fh *multipart.FileHeader) (*Uploaded, error) {
	if fh.Size > maxUploadSize {
		return nil, fmt.Errorf("حجم الملف يتجاوز الحد المسموح (10MB)")
	}

	data, err := readAll(fh)
	if err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(head(data))
	name := fh.Filename

	if isImageContentType(contentType) {
		webpData, err := EncodeWebP(data, defaultWebPOptions())
		if err == nil {
			data = webpData
			contentType = "image/webp"
			name = replaceExt(name, ".webp")
		}
		// decode failures fall through and store the original bytes
	}

	objectPath := ObjectName(folder, name)
	if err := s.Upload(bucket, objectPath, contentType, data); err != nil {
		return nil, err
	}

	up := &Uploaded{
		Path: objectPath,
		URL:  s.PublicURL(bucket, objectPath),
		Size: int64(len(data)),
	}

	// preview for list views; a thumb failure never fails the upload
	if contentType == "image/webp" {
		if tb, err := Thumbnail(data, 320); err == nil {
			thumbPath := replaceExt(objectPath, "") + "_thumb.webp"
			if err := s.Upload(bucket, thumbPath, "image/webp", tb); err == nil {
				up.ThumbURL = s.PublicURL(bucket, thumbPath)
			}
		}
	}

	return up, nil
}

func head(b []byte) []byte {
	if len(b) > 512 {
		return b[:512]
	}
	return b
}
