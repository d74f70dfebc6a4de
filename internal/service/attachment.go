package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
)

// Upload is one file of a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

// ProcessedMedia is the result of validating an Upload.
type ProcessedMedia struct {
	Kind     model.MediaKind
	MimeType string
	// Thumbnail is a JPEG preview for images, nil otherwise.
	Thumbnail []byte
}

// SendRequest is a message carrying files.
type SendRequest struct {
	ConversationID  string
	SenderID        string
	Type            model.MessageType
	Content         string
	Primary         *Upload
	VoiceDuration   float64
	Attachments     []Upload
	AttachmentTypes []model.AttachmentType
}

// AttachmentPipeline validates and stores message files. A batch is all or nothing:
// every file is validated before anything is stored, and rows are written in one
// transaction with the message that carries them.
type AttachmentPipeline struct {
	tx            TxRunner
	log           *MessageLog
	attachments   AttachmentStore
	processor     MediaProcessor
	blobs         BlobStore
	hooks         *Hooks
	maxPerMessage int
}

func NewAttachmentPipeline(tx TxRunner, log *MessageLog, attachments AttachmentStore, processor MediaProcessor,
	blobs BlobStore, hooks *Hooks, maxPerMessage int) *AttachmentPipeline {
	return &AttachmentPipeline{
		tx: tx, log: log, attachments: attachments, processor: processor,
		blobs: blobs, hooks: hooks, maxPerMessage: maxPerMessage,
	}
}

type checkedUpload struct {
	up   Upload
	meta *ProcessedMedia
	typ  model.AttachmentType
}

// stored tracks blobs written for one batch so they can be removed on failure.
type stored struct {
	blobs BlobStore
	urls  []string
}

func (s *stored) save(ctx context.Context, filename string, r io.Reader) (string, error) {
	url, err := s.blobs.Save(ctx, filename, r)
	if err != nil {
		return "", err
	}
	s.urls = append(s.urls, url)
	return url, nil
}

func (s *stored) cleanup(ctx context.Context) {
	for _, url := range s.urls {
		if err := s.blobs.Remove(context.WithoutCancel(ctx), url); err != nil {
			logger.Errorf("attachments: remove %s: %v", url, err)
		}
	}
}

func (p *AttachmentPipeline) check(up Upload, kind model.MediaKind) (*ProcessedMedia, error) {
	meta, err := p.processor.Process(up, kind)
	if err != nil {
		return nil, err
	}
	if _, err := up.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", up.Filename, err)
	}
	return meta, nil
}

func (p *AttachmentPipeline) checkBatch(uploads []Upload, types []model.AttachmentType) ([]checkedUpload, error) {
	if len(uploads) != len(types) {
		return nil, validationf("attachments and attachment_types must have the same length")
	}
	if p.maxPerMessage > 0 && len(uploads) > p.maxPerMessage {
		return nil, validationf("at most %d attachments per message", p.maxPerMessage)
	}
	out := make([]checkedUpload, 0, len(uploads))
	for i, up := range uploads {
		if !types[i].Valid() {
			return nil, validationf("attachment %d: unsupported attachment type %q", i+1, types[i])
		}
		meta, err := p.check(up, types[i].Kind())
		if err != nil {
			return nil, fmt.Errorf("attachment %d: %w", i+1, err)
		}
		out = append(out, checkedUpload{up: up, meta: meta, typ: types[i]})
	}
	return out, nil
}

func (p *AttachmentPipeline) storeBatch(ctx context.Context, s *stored, batch []checkedUpload) ([]model.Attachment, error) {
	items := make([]model.Attachment, 0, len(batch))
	for _, c := range batch {
		url, err := s.save(ctx, c.up.Filename, c.up.Content)
		if err != nil {
			return nil, err
		}
		a := model.Attachment{
			Type:     c.typ,
			FileURL:  url,
			FileName: c.up.Filename,
			FileSize: c.up.Size,
			MimeType: c.meta.MimeType,
		}
		if c.meta.Thumbnail != nil {
			if a.ThumbnailURL, err = s.save(ctx, thumbName(c.up.Filename), bytes.NewReader(c.meta.Thumbnail)); err != nil {
				return nil, err
			}
		}
		items = append(items, a)
	}
	return items, nil
}

// Send validates every file, stores them and appends the message with its attachments.
// Nothing is persisted if any step fails.
func (p *AttachmentPipeline) Send(ctx context.Context, req SendRequest) (*model.Message, error) {
	defer logger.DeferLogDuration("attachments.Send", time.Now())()
	if !req.Type.Valid() {
		return nil, validationf("unknown message type %q", req.Type)
	}
	kind, hasMedia := req.Type.MediaKind()
	if hasMedia && req.Primary == nil {
		return nil, validationf("%s message requires a file", req.Type)
	}
	if !hasMedia && req.Primary != nil {
		return nil, validationf("text messages carry files as attachments")
	}
	if req.Type == model.MessageTypeText && strings.TrimSpace(req.Content) == "" && len(req.Attachments) == 0 {
		return nil, validationf("message content is empty")
	}
	participants, err := p.log.participants(ctx, req.ConversationID, req.SenderID)
	if err != nil {
		return nil, err
	}

	var primary *ProcessedMedia
	if req.Primary != nil {
		if primary, err = p.check(*req.Primary, kind); err != nil {
			return nil, err
		}
	}
	batch, err := p.checkBatch(req.Attachments, req.AttachmentTypes)
	if err != nil {
		return nil, err
	}

	s := &stored{blobs: p.blobs}
	var media *model.Media
	if req.Primary != nil {
		url, err := s.save(ctx, req.Primary.Filename, req.Primary.Content)
		if err != nil {
			s.cleanup(ctx)
			return nil, err
		}
		media = &model.Media{
			URL:      url,
			Name:     req.Primary.Filename,
			Size:     req.Primary.Size,
			MimeType: primary.MimeType,
		}
		if req.Type == model.MessageTypeVoice && req.VoiceDuration > 0 {
			media.VoiceDuration = req.VoiceDuration
		}
		if primary.Thumbnail != nil {
			if media.ThumbnailURL, err = s.save(ctx, thumbName(req.Primary.Filename), bytes.NewReader(primary.Thumbnail)); err != nil {
				s.cleanup(ctx)
				return nil, err
			}
		}
	}
	items, err := p.storeBatch(ctx, s, batch)
	if err != nil {
		s.cleanup(ctx)
		return nil, err
	}

	var m *model.Message
	err = p.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		m, err = p.log.insert(ctx, AppendRequest{
			ConversationID: req.ConversationID,
			SenderID:       req.SenderID,
			Type:           req.Type,
			Content:        req.Content,
			Media:          media,
		})
		if err != nil {
			return err
		}
		m.Attachments, err = p.attachments.InsertBatch(ctx, model.MessageOwner{MessageID: m.ID}, items)
		return err
	})
	if err != nil {
		s.cleanup(ctx)
		return nil, err
	}

	p.hooks.Run(ctx, Event{
		Kind:           EventMessageCreated,
		ConversationID: m.ConversationID,
		Message:        m,
		MessageID:      m.ID,
		UserID:         m.SenderID,
		ParticipantIDs: participants,
	})
	return m, nil
}

// Attach adds files to an existing message of the requester.
func (p *AttachmentPipeline) Attach(ctx context.Context, messageID, requesterID string, uploads []Upload,
	types []model.AttachmentType) (*model.Message, error) {
	defer logger.DeferLogDuration("attachments.Attach", time.Now())()
	m, err := p.log.get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m.SenderID != requesterID {
		return nil, denied("you can only attach files to your own messages")
	}
	if len(uploads) == 0 {
		return nil, validationf("no attachments")
	}
	existing, err := p.attachments.ListForMessages(ctx, []string{messageID})
	if err != nil {
		return nil, err
	}
	if p.maxPerMessage > 0 && len(existing[messageID])+len(uploads) > p.maxPerMessage {
		return nil, validationf("at most %d attachments per message", p.maxPerMessage)
	}
	batch, err := p.checkBatch(uploads, types)
	if err != nil {
		return nil, err
	}

	s := &stored{blobs: p.blobs}
	items, err := p.storeBatch(ctx, s, batch)
	if err != nil {
		s.cleanup(ctx)
		return nil, err
	}
	err = p.tx.WithTx(ctx, func(ctx context.Context) error {
		_, err := p.attachments.InsertBatch(ctx, model.MessageOwner{MessageID: messageID}, items)
		return err
	})
	if err != nil {
		s.cleanup(ctx)
		return nil, storeErr("message", err)
	}

	if err := p.log.enrich(ctx, []*model.Message{m}, requesterID); err != nil {
		return nil, err
	}
	p.hooks.Run(ctx, Event{
		Kind:           EventAttachmentsAdded,
		ConversationID: m.ConversationID,
		Message:        m,
		MessageID:      m.ID,
		UserID:         requesterID,
	})
	return m, nil
}

func thumbName(filename string) string {
	return "thumb_" + strings.TrimSuffix(filename, fileExt(filename)) + ".jpg"
}

func fileExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
