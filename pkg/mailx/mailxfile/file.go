package mailxfile

import (
	"context"
	"encoding/json"

	"github.com/Abraxas-365/cheapalerts/pkg/fsx"
	"github.com/Abraxas-365/cheapalerts/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
)

// Record is the JSON document written for each message.
type Record struct {
	Envelope  RecordEnvelope `json:"envelope"`
	MessageID string         `json:"message_id"`
	Date      string         `json:"date"`
	Subject   string         `json:"subject,omitempty"`
	Message   string         `json:"message"`
}

// RecordEnvelope mirrors mailx.Envelope with plain strings.
type RecordEnvelope struct {
	From string   `json:"from"`
	To   []string `json:"to"`
}

// Transport writes every email as <ID>.json through an fsx.FileWriter.
type Transport struct {
	fs fsx.FileWriter
}

var _ mailx.Transport = (*Transport)(nil)

// New creates a file transport over any writer (local disk, S3, ...).
func New(fs fsx.FileWriter) *Transport {
	return &Transport{fs: fs}
}

// NewLocal creates a file transport writing into dir, creating it if needed.
func NewLocal(dir string) (*Transport, error) {
	fs, err := fsxlocal.NewLocalFileSystem(dir)
	if err != nil {
		return nil, fileErrors.NewWithCause(ErrOpen, err).WithDetail("path", dir)
	}
	return New(fs), nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "file"
}

// FileName returns the name a record for email is stored under.
func FileName(email *mailx.Email) string {
	return email.ID + ".json"
}

// Send encodes email as a Record and writes it.
func (t *Transport) Send(ctx context.Context, email *mailx.Email) error {
	rec := Record{
		Envelope: RecordEnvelope{
			From: email.Envelope.From.String(),
			To:   email.Envelope.Recipients(),
		},
		MessageID: email.MessageID(),
		Date:      email.DateHeader(),
		Subject:   email.Subject,
		Message:   string(email.Body),
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fileErrors.NewWithCause(ErrEncode, err).WithDetail("message_id", rec.MessageID)
	}

	name := FileName(email)
	if err := t.fs.WriteFile(ctx, name, data); err != nil {
		return fileErrors.NewWithCause(ErrWrite, err).
			WithDetail("file", name).
			WithDetail("to", rec.Envelope.To)
	}

	logx.WithFields(logx.Fields{
		"file":       name,
		"message_id": rec.MessageID,
	}).Debug("mailx/file: message written")

	return nil
}

// ReadRecord loads a record previously written under name.
func ReadRecord(ctx context.Context, fs fsx.FileReader, name string) (Record, error) {
	data, err := fs.ReadFile(ctx, name)
	if err != nil {
		return Record{}, fileErrors.NewWithCause(ErrRead, err).WithDetail("file", name)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fileErrors.NewWithCause(ErrDecode, err).WithDetail("file", name)
	}
	return rec, nil
}
