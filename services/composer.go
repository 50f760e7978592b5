// services/composer.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Lakshay1509/carheroz-tracker/models"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// BatchHeader holds the fields shared by every draft entry in a batch.
type BatchHeader struct {
	EmployeeName string    `json:"employeeName"`
	ServiceDate  time.Time `json:"serviceDate"`
}

// DraftEntry is a locally-held candidate record inside a batch. Its ID only
// identifies the draft within its session and is never persisted.
type DraftEntry struct {
	ID                uuid.UUID `json:"id"`
	ServiceType       string    `json:"serviceType"`
	PaymentAmount     float64   `json:"paymentAmount"`
	PaymentMode       string    `json:"paymentMode"`
	PaymentAcceptedBy string    `json:"paymentAcceptedBy"`
}

// DraftPatch carries optional replacements for single draft fields.
type DraftPatch struct {
	ServiceType       *string
	PaymentAmount     *float64
	PaymentMode       *string
	PaymentAcceptedBy *string
}

var (
	// ErrHeaderIncomplete gates draft creation until the shared employee name
	// and service date are both set.
	ErrHeaderIncomplete = errors.New("set the employee name and service date before adding entries")
	// ErrDraftNotFound is returned for unknown draft ids.
	ErrDraftNotFound = errors.New("draft entry not found")
)

// DraftValidationError reports the first draft that failed commit validation.
// Entry is the 1-based position of the draft in the batch.
type DraftValidationError struct {
	Entry  int
	Field  string
	Reason string
}

func (e *DraftValidationError) Error() string {
	return fmt.Sprintf("entry %d: %s", e.Entry, e.Reason)
}

type batchSession struct {
	header  *BatchHeader
	drafts  []DraftEntry
	touched time.Time
}

// BatchComposer accumulates draft service entries under a shared
// employee/date header, one session per user, and commits them as
// independent records. Sessions live in memory only; a restart discards
// them, matching the throwaway nature of an unsubmitted form.
type BatchComposer struct {
	store *RecordStore

	mu       sync.Mutex
	sessions map[uuid.UUID]*batchSession
}

func NewBatchComposer(store *RecordStore) *BatchComposer {
	return &BatchComposer{
		store:    store,
		sessions: make(map[uuid.UUID]*batchSession),
	}
}

func (b *BatchComposer) session(userID uuid.UUID) *batchSession {
	sess, ok := b.sessions[userID]
	if !ok {
		sess = &batchSession{}
		b.sessions[userID] = sess
	}
	sess.touched = time.Now()
	return sess
}

// SetHeader replaces the shared header of the user's session.
func (b *BatchComposer) SetHeader(userID uuid.UUID, header BatchHeader) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess := b.session(userID)
	sess.header = &header
}

// Session returns the current header (nil if unset) and a copy of the drafts.
func (b *BatchComposer) Session(userID uuid.UUID) (*BatchHeader, []DraftEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess := b.session(userID)
	drafts := make([]DraftEntry, len(sess.drafts))
	copy(drafts, sess.drafts)
	if sess.header == nil {
		return nil, drafts
	}
	header := *sess.header
	return &header, drafts
}

// AddDraft appends a draft with default field values. It fails until the
// header is fully populated, so a batch can never be composed headerless.
func (b *BatchComposer) AddDraft(userID uuid.UUID) (DraftEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess := b.session(userID)
	if sess.header == nil || sess.header.EmployeeName == "" || sess.header.ServiceDate.IsZero() {
		return DraftEntry{}, ErrHeaderIncomplete
	}
	draft := DraftEntry{
		ID:          uuid.New(),
		PaymentMode: models.PaymentModeOnline,
	}
	sess.drafts = append(sess.drafts, draft)
	return draft, nil
}

// UpdateDraft replaces the given fields of one draft. No cross-field
// validation happens here; commit is the validation gate.
func (b *BatchComposer) UpdateDraft(userID, draftID uuid.UUID, patch DraftPatch) (DraftEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess := b.session(userID)
	for i := range sess.drafts {
		if sess.drafts[i].ID != draftID {
			continue
		}
		if patch.ServiceType != nil {
			sess.drafts[i].ServiceType = *patch.ServiceType
		}
		if patch.PaymentAmount != nil {
			sess.drafts[i].PaymentAmount = *patch.PaymentAmount
		}
		if patch.PaymentMode != nil {
			sess.drafts[i].PaymentMode = *patch.PaymentMode
		}
		if patch.PaymentAcceptedBy != nil {
			sess.drafts[i].PaymentAcceptedBy = *patch.PaymentAcceptedBy
		}
		return sess.drafts[i], nil
	}
	return DraftEntry{}, ErrDraftNotFound
}

// RemoveDraft removes one draft, leaving the others untouched.
func (b *BatchComposer) RemoveDraft(userID, draftID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess := b.session(userID)
	for i := range sess.drafts {
		if sess.drafts[i].ID == draftID {
			sess.drafts = append(sess.drafts[:i], sess.drafts[i+1:]...)
			return nil
		}
	}
	return ErrDraftNotFound
}

// Commit validates every draft, then persists one record per draft under the
// shared header. Any validation failure aborts the whole commit before a
// single write; a write failure mid-sequence leaves the earlier records
// persisted (there is no batch transaction, each record stands alone). On
// full success the drafts clear and the header stays, so another batch for
// the same employee and date needs no re-entry.
func (b *BatchComposer) Commit(ctx context.Context, userID uuid.UUID) ([]models.ServiceRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sess := b.session(userID)
	if sess.header == nil || sess.header.EmployeeName == "" || sess.header.ServiceDate.IsZero() {
		return nil, ErrHeaderIncomplete
	}
	if len(sess.drafts) == 0 {
		return nil, &DraftValidationError{Entry: 0, Field: "entries", Reason: "add at least one entry before saving"}
	}

	for i, draft := range sess.drafts {
		if err := validateDraft(i+1, draft); err != nil {
			return nil, err
		}
	}

	created := make([]models.ServiceRecord, 0, len(sess.drafts))
	for i, draft := range sess.drafts {
		record := models.ServiceRecord{
			UserID:            userID,
			EmployeeName:      sess.header.EmployeeName,
			ServiceDate:       sess.header.ServiceDate,
			ServiceType:       draft.ServiceType,
			PaymentAmount:     draft.PaymentAmount,
			PaymentMode:       draft.PaymentMode,
			PaymentAcceptedBy: draft.PaymentAcceptedBy,
		}
		if err := b.store.Create(ctx, &record); err != nil {
			return created, fmt.Errorf("saving entry %d: %w", i+1, err)
		}
		created = append(created, record)
	}

	sess.drafts = nil
	return created, nil
}

func validateDraft(entry int, draft DraftEntry) error {
	if draft.ServiceType == "" {
		return &DraftValidationError{Entry: entry, Field: "serviceType", Reason: "service type is required"}
	}
	if draft.PaymentAmount <= 0 {
		return &DraftValidationError{Entry: entry, Field: "paymentAmount", Reason: "payment amount must be greater than zero"}
	}
	if !models.ValidPaymentMode(draft.PaymentMode) {
		return &DraftValidationError{Entry: entry, Field: "paymentMode", Reason: "payment mode must be Online or Cash"}
	}
	if !models.ValidPaymentAcceptedBy(draft.PaymentAcceptedBy) {
		return &DraftValidationError{Entry: entry, Field: "paymentAcceptedBy", Reason: "payment accepted by is required"}
	}
	return nil
}

// StartCleanup schedules an hourly prune of composer sessions nobody has
// touched for a day.
func (b *BatchComposer) StartCleanup() {
	c := cron.New()
	c.AddFunc("@hourly", func() {
		b.pruneBefore(time.Now().Add(-24 * time.Hour))
	})
	c.Start()
	log.Println("Batch session cleanup scheduler started")
}

func (b *BatchComposer) pruneBefore(cutoff time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for userID, sess := range b.sessions {
		if sess.touched.Before(cutoff) {
			delete(b.sessions, userID)
		}
	}
}
