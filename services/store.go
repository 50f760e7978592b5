// services/store.go
package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Lakshay1509/carheroz-tracker/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when an update or delete names an id that
// does not exist for the calling user.
var ErrRecordNotFound = errors.New("service record not found")

// RecordPatch carries the replaceable fields of a service record. Nil fields
// are left untouched; id, owner and creation time are never replaceable.
type RecordPatch struct {
	EmployeeName      *string
	ServiceType       *string
	ServiceDate       *time.Time
	PaymentAmount     *float64
	PaymentMode       *string
	PaymentAcceptedBy *string
}

// RecordStore issues reads and writes against the service records collection
// and fans out a full snapshot to live subscribers after every write. All
// operations are scoped to a single owning user.
type RecordStore struct {
	db *gorm.DB

	mu   sync.Mutex
	subs map[uuid.UUID]map[chan []models.ServiceRecord]struct{}
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{
		db:   db,
		subs: make(map[uuid.UUID]map[chan []models.ServiceRecord]struct{}),
	}
}

// List returns the owner's records ordered by service date, newest first.
// CreatedAt breaks ties so same-day records keep a stable order between
// snapshots.
func (s *RecordStore) List(ctx context.Context, ownerID uuid.UUID) ([]models.ServiceRecord, error) {
	records := []models.ServiceRecord{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("service_date DESC, created_at DESC").
		Find(&records).Error
	return records, err
}

// Create persists a new record. The id and creation timestamp are assigned
// at write time, never by the caller.
func (s *RecordStore) Create(ctx context.Context, record *models.ServiceRecord) error {
	record.ID = uuid.Nil
	record.CreatedAt = time.Time{}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}
	s.notify(record.UserID)
	return nil
}

// Update merges the given fields into the stored record.
func (s *RecordStore) Update(ctx context.Context, ownerID, id uuid.UUID, patch RecordPatch) error {
	updates := map[string]interface{}{}
	if patch.EmployeeName != nil {
		updates["employee_name"] = *patch.EmployeeName
	}
	if patch.ServiceType != nil {
		updates["service_type"] = *patch.ServiceType
	}
	if patch.ServiceDate != nil {
		updates["service_date"] = *patch.ServiceDate
	}
	if patch.PaymentAmount != nil {
		updates["payment_amount"] = *patch.PaymentAmount
	}
	if patch.PaymentMode != nil {
		updates["payment_mode"] = *patch.PaymentMode
	}
	if patch.PaymentAcceptedBy != nil {
		updates["payment_accepted_by"] = *patch.PaymentAcceptedBy
	}
	if len(updates) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).Model(&models.ServiceRecord{}).
		Where("user_id = ? AND id = ?", ownerID, id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	s.notify(ownerID)
	return nil
}

// Delete removes the record permanently. There is no soft delete.
func (s *RecordStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&models.ServiceRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	s.notify(ownerID)
	return nil
}

// Subscribe opens a live snapshot stream for one owner. The channel carries
// the owner's full record list: once immediately, then again after every
// write that touches the owner. cancel releases the subscription and closes
// the channel; callers must invoke it on teardown. If the snapshot query
// fails server-side, the channel is closed and the subscription ends. There
// is no automatic resubscription.
func (s *RecordStore) Subscribe(ownerID uuid.UUID) (<-chan []models.ServiceRecord, func()) {
	ch := make(chan []models.ServiceRecord, 1)

	// Register before the initial query so a write landing in between still
	// reaches this subscriber through notify.
	s.mu.Lock()
	if s.subs[ownerID] == nil {
		s.subs[ownerID] = make(map[chan []models.ServiceRecord]struct{})
	}
	s.subs[ownerID][ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			set, ok := s.subs[ownerID]
			if !ok {
				return
			}
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(s.subs, ownerID)
			}
		})
	}

	records, err := s.List(context.Background(), ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	set, registered := s.subs[ownerID]
	if !registered {
		return ch, cancel
	}
	if _, open := set[ch]; !open {
		return ch, cancel
	}
	if err != nil {
		log.Printf("Snapshot query failed for user %s: %v", ownerID, err)
		delete(set, ch)
		close(ch)
		if len(set) == 0 {
			delete(s.subs, ownerID)
		}
		return ch, cancel
	}
	select {
	case existing := <-ch: // a concurrent write already delivered; keep the fresher one
		ch <- existing
	default:
		ch <- records
	}
	return ch, cancel
}

// notify re-queries the owner's records and pushes the snapshot to every
// open subscription. A subscriber that has not read its previous snapshot
// only ever sees the latest one.
func (s *RecordStore) notify(ownerID uuid.UUID) {
	s.mu.Lock()
	if len(s.subs[ownerID]) == 0 {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	records, err := s.List(context.Background(), ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.subs[ownerID]
	if len(set) == 0 {
		return
	}
	if err != nil {
		log.Printf("Snapshot query failed for user %s: %v", ownerID, err)
		for ch := range set {
			close(ch)
		}
		delete(s.subs, ownerID)
		return
	}
	for ch := range set {
		select {
		case <-ch: // drop the stale, unread snapshot
		default:
		}
		ch <- records
	}
}
