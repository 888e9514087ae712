package notifier

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/blogem/form-intake/models"
)

const (
	// MaxAttachmentSize is the largest single upload that is attached
	MaxAttachmentSize = 10 * 1024 * 1024
	// MaxEmailSize is the ceiling for all attachments of one email combined
	MaxEmailSize = 25 * 1024 * 1024
)

// Attachment is a decoded file ready to be sent with an email
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// PrepareAttachments decodes uploads and applies the size limits. Dropped
// uploads are reported as one note line each, in upload order. An upload that
// would push the total past MaxEmailSize is dropped while later, smaller
// uploads are still considered.
func PrepareAttachments(uploads []models.Upload) ([]Attachment, []string) {
	var attachments []Attachment
	var notes []string
	total := 0

	for _, upload := range uploads {
		name := upload.Name
		if name == "" {
			name = "unnamed"
		}

		if upload.Size > MaxAttachmentSize {
			notes = append(notes, fmt.Sprintf("%s (excluded: larger than %dMB)", name, MaxAttachmentSize>>20))
			continue
		}

		if strings.TrimSpace(upload.Data) == "" {
			notes = append(notes, fmt.Sprintf("%s (excluded: no data)", name))
			continue
		}

		data, err := decodeBase64(upload.Data)
		if err != nil {
			notes = append(notes, fmt.Sprintf("%s (excluded: invalid data)", name))
			continue
		}

		if len(data) > MaxAttachmentSize {
			notes = append(notes, fmt.Sprintf("%s (excluded: larger than %dMB)", name, MaxAttachmentSize>>20))
			continue
		}

		if total+len(data) > MaxEmailSize {
			notes = append(notes, fmt.Sprintf("%s (excluded: email size limit of %dMB reached)", name, MaxEmailSize>>20))
			continue
		}

		contentType := upload.Type
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		attachments = append(attachments, Attachment{Name: name, ContentType: contentType, Data: data})
		total += len(data)
	}

	return attachments, notes
}

// decodeBase64 accepts standard base64, optionally prefixed with a data URL header
func decodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	return data, nil
}
