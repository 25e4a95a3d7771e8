package memory

import (
	"github.com/hashicorp/go-memdb"
)

const (
	tableUsers          = "users"
	tableProjects       = "projects"
	tableWings          = "wings"
	tableFloors         = "floors"
	tableFlats          = "flats"
	tableDisbursements  = "disbursements"
	tableBankDetails    = "bankDetails"
	tableAmenities      = "amenities"
	tableDocuments      = "documents"
	tableClients        = "clients"
	tableEnquiries      = "enquiries"
	tableEnquiryRemarks = "enquiryRemarks"
	tableBookings       = "bookings"
	tableFollowUps      = "followUps"
	tableFollowUpNodes  = "followUpNodes"
	tableNotifications  = "notifications"
	tableActivityLog    = "activityLog"
)

const (
	indexID       = "id"
	indexProject  = "project"
	indexWing     = "wing"
	indexFloor    = "floor"
	indexClient   = "client"
	indexEnquiry  = "enquiry"
	indexProperty = "property"
	indexFollowUp = "follow_up"
	indexUser     = "user"
	indexUsername = "username"
	indexEmail    = "email"
)

func idIndex(field string) *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:    indexID,
		Unique:  true,
		Indexer: &memdb.StringFieldIndex{Field: field},
	}
}

func fieldIndex(name, field string, lowercase bool) *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:         name,
		AllowMissing: true,
		Indexer:      &memdb.StringFieldIndex{Field: field, Lowercase: lowercase},
	}
}

func table(name, idField string, secondary ...*memdb.IndexSchema) *memdb.TableSchema {
	indexes := map[string]*memdb.IndexSchema{indexID: idIndex(idField)}
	for _, idx := range secondary {
		indexes[idx.Name] = idx
	}
	return &memdb.TableSchema{Name: name, Indexes: indexes}
}

// schema describes every table of the in-memory store. Rows are stored as
// pointers to domain structs and never mutated after insertion.
func schema() *memdb.DBSchema {
	tables := []*memdb.TableSchema{
		table(tableUsers, "UserID",
			fieldIndex(indexUsername, "Username", true),
			fieldIndex(indexEmail, "Email", true)),
		table(tableProjects, "ProjectID"),
		table(tableWings, "WingID", fieldIndex(indexProject, "ProjectID", false)),
		table(tableFloors, "FloorID",
			fieldIndex(indexProject, "ProjectID", false),
			fieldIndex(indexWing, "WingID", false)),
		table(tableFlats, "PropertyID",
			fieldIndex(indexProject, "ProjectID", false),
			fieldIndex(indexWing, "WingID", false),
			fieldIndex(indexFloor, "FloorID", false)),
		table(tableDisbursements, "DisbursementID", fieldIndex(indexProject, "ProjectID", false)),
		table(tableBankDetails, "BankDetailID", fieldIndex(indexProject, "ProjectID", false)),
		table(tableAmenities, "AmenityID", fieldIndex(indexProject, "ProjectID", false)),
		table(tableDocuments, "DocumentID", fieldIndex(indexProject, "ProjectID", false)),
		table(tableClients, "ClientID"),
		table(tableEnquiries, "EnquiryID",
			fieldIndex(indexProject, "ProjectID", false),
			fieldIndex(indexClient, "ClientID", false),
			fieldIndex(indexProperty, "PropertyID", false)),
		table(tableEnquiryRemarks, "RemarkID", fieldIndex(indexEnquiry, "EnquiryID", false)),
		table(tableBookings, "BookingID",
			fieldIndex(indexProject, "ProjectID", false),
			fieldIndex(indexClient, "ClientID", false),
			fieldIndex(indexProperty, "PropertyID", false),
			fieldIndex(indexEnquiry, "EnquiryID", false)),
		table(tableFollowUps, "FollowUpID", fieldIndex(indexEnquiry, "EnquiryID", false)),
		table(tableFollowUpNodes, "FollowUpNodeID", fieldIndex(indexFollowUp, "FollowUpID", false)),
		table(tableNotifications, "NotificationID", fieldIndex(indexUser, "UserID", false)),
		table(tableActivityLog, "ActivityID"),
	}
	s := &memdb.DBSchema{Tables: make(map[string]*memdb.TableSchema, len(tables))}
	for _, t := range tables {
		s.Tables[t.Name] = t
	}
	return s
}
