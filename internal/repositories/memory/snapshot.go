package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/hashicorp/go-memdb"
)

// Snapshot is the whole store as one JSON document. The key names are fixed.
type Snapshot struct {
	Users          []domain.User          `json:"users"`
	Projects       []domain.Project       `json:"projects"`
	Wings          []domain.Wing          `json:"wings"`
	Floors         []domain.Floor         `json:"floors"`
	Flats          []domain.Flat          `json:"flats"`
	Disbursements  []domain.Disbursement  `json:"disbursements"`
	BankDetails    []domain.BankDetail    `json:"bankDetails"`
	Amenities      []domain.Amenity       `json:"amenities"`
	Documents      []domain.Document      `json:"documents"`
	Clients        []domain.Client        `json:"clients"`
	Enquiries      []domain.Enquiry       `json:"enquiries"`
	EnquiryRemarks []domain.EnquiryRemark `json:"enquiryRemarks"`
	Bookings       []domain.Booking       `json:"bookings"`
	FollowUps      []domain.FollowUp      `json:"followUps"`
	FollowUpNodes  []domain.FollowUpNode  `json:"followUpNodes"`
	Notifications  []domain.Notification  `json:"notifications"`
	ActivityLog    []domain.ActivityLog   `json:"activityLog"`
}

// Export copies every row, soft-deleted ones included, into a Snapshot.
func (s *Store) Export() (*Snapshot, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	snap := &Snapshot{}
	var err error
	if snap.Users, err = all[domain.User](txn, tableUsers, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Projects, err = all[domain.Project](txn, tableProjects, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Wings, err = all[domain.Wing](txn, tableWings, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Floors, err = all[domain.Floor](txn, tableFloors, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Flats, err = all[domain.Flat](txn, tableFlats, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Disbursements, err = all[domain.Disbursement](txn, tableDisbursements, indexID, nil); err != nil {
		return nil, err
	}
	if snap.BankDetails, err = all[domain.BankDetail](txn, tableBankDetails, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Amenities, err = all[domain.Amenity](txn, tableAmenities, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Documents, err = all[domain.Document](txn, tableDocuments, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Clients, err = all[domain.Client](txn, tableClients, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Enquiries, err = all[domain.Enquiry](txn, tableEnquiries, indexID, nil); err != nil {
		return nil, err
	}
	if snap.EnquiryRemarks, err = all[domain.EnquiryRemark](txn, tableEnquiryRemarks, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Bookings, err = all[domain.Booking](txn, tableBookings, indexID, nil); err != nil {
		return nil, err
	}
	if snap.FollowUps, err = all[domain.FollowUp](txn, tableFollowUps, indexID, nil); err != nil {
		return nil, err
	}
	if snap.FollowUpNodes, err = all[domain.FollowUpNode](txn, tableFollowUpNodes, indexID, nil); err != nil {
		return nil, err
	}
	if snap.Notifications, err = all[domain.Notification](txn, tableNotifications, indexID, nil); err != nil {
		return nil, err
	}
	if snap.ActivityLog, err = all[domain.ActivityLog](txn, tableActivityLog, indexID, nil); err != nil {
		return nil, err
	}
	return snap, nil
}

// Import inserts every row of snap in one transaction. Existing rows with the
// same id are replaced.
func (s *Store) Import(snap *Snapshot) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	steps := []error{
		insertAll(txn, tableUsers, snap.Users),
		insertAll(txn, tableProjects, snap.Projects),
		insertAll(txn, tableWings, snap.Wings),
		insertAll(txn, tableFloors, snap.Floors),
		insertAll(txn, tableFlats, snap.Flats),
		insertAll(txn, tableDisbursements, snap.Disbursements),
		insertAll(txn, tableBankDetails, snap.BankDetails),
		insertAll(txn, tableAmenities, snap.Amenities),
		insertAll(txn, tableDocuments, snap.Documents),
		insertAll(txn, tableClients, snap.Clients),
		insertAll(txn, tableEnquiries, snap.Enquiries),
		insertAll(txn, tableEnquiryRemarks, snap.EnquiryRemarks),
		insertAll(txn, tableBookings, snap.Bookings),
		insertAll(txn, tableFollowUps, snap.FollowUps),
		insertAll(txn, tableFollowUpNodes, snap.FollowUpNodes),
		insertAll(txn, tableNotifications, snap.Notifications),
		insertAll(txn, tableActivityLog, snap.ActivityLog),
	}
	if err := errors.Join(steps...); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	txn.Commit()
	return nil
}

func insertAll[T any](txn *memdb.Txn, table string, rows []T) error {
	for _, r := range rows {
		if err := insert(txn, table, r); err != nil {
			return err
		}
	}
	return nil
}

// loadSnapshot imports the snapshot file. A missing file is not an error.
func (s *Store) loadSnapshot() (bool, error) {
	data, err := os.ReadFile(s.snapshotPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot %s: %w", s.snapshotPath, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", s.snapshotPath, err)
	}
	if err := s.Import(&snap); err != nil {
		return false, err
	}
	return true, nil
}

// writeSnapshot replaces the snapshot file atomically (temp file + rename).
func (s *Store) writeSnapshot() error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	snap, err := s.Export()
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.snapshotPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.snapshotPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
