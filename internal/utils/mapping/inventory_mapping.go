package mapping

import (
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/models"
)

// ToModelWing converts a domain Wing to a model Wing
func ToModelWing(d domain.Wing) models.Wing {
	return models.Wing{
		WingID:         d.WingID,
		ProjectID:      d.ProjectID,
		WingName:       d.WingName,
		NoOfFloors:     d.NoOfFloors,
		NoOfProperties: d.NoOfProperties,
		IsDeleted:      d.IsDeleted,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWing converts a model Wing to a domain Wing
func ToDomainWing(m models.Wing) domain.Wing {
	return domain.Wing{
		WingID:         m.WingID,
		ProjectID:      m.ProjectID,
		WingName:       m.WingName,
		NoOfFloors:     m.NoOfFloors,
		NoOfProperties: m.NoOfProperties,
		IsDeleted:      m.IsDeleted,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWingSlice converts a slice of model Wings
func ToDomainWingSlice(ms []models.Wing) []domain.Wing {
	return convertSlice(ms, ToDomainWing)
}

// ToModelFloor converts a domain Floor to a model Floor
func ToModelFloor(d domain.Floor) models.Floor {
	return models.Floor{
		FloorID:      d.FloorID,
		ProjectID:    d.ProjectID,
		WingID:       d.WingID,
		FloorNo:      d.FloorNo,
		FloorName:    d.FloorName,
		PropertyType: d.PropertyType,
		Area:         d.Area,
		Quantity:     d.Quantity,
		IsDeleted:    d.IsDeleted,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFloor converts a model Floor to a domain Floor
func ToDomainFloor(m models.Floor) domain.Floor {
	return domain.Floor{
		FloorID:      m.FloorID,
		ProjectID:    m.ProjectID,
		WingID:       m.WingID,
		FloorNo:      m.FloorNo,
		FloorName:    m.FloorName,
		PropertyType: m.PropertyType,
		Area:         m.Area,
		Quantity:     m.Quantity,
		IsDeleted:    m.IsDeleted,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFloorSlice converts a slice of model Floors
func ToDomainFloorSlice(ms []models.Floor) []domain.Floor {
	return convertSlice(ms, ToDomainFloor)
}

// ToModelFlat converts a domain Flat to a model Flat
func ToModelFlat(d domain.Flat) models.Flat {
	return models.Flat{
		PropertyID:  d.PropertyID,
		ProjectID:   d.ProjectID,
		WingID:      d.WingID,
		FloorID:     d.FloorID,
		UnitNumber:  d.UnitNumber,
		Status:      string(d.Status),
		Area:        d.Area,
		BHK:         d.BHK,
		IsDeleted:   d.IsDeleted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFlat converts a model Flat to a domain Flat
func ToDomainFlat(m models.Flat) domain.Flat {
	return domain.Flat{
		PropertyID:  m.PropertyID,
		ProjectID:   m.ProjectID,
		WingID:      m.WingID,
		FloorID:     m.FloorID,
		UnitNumber:  m.UnitNumber,
		Status:      domain.UnitStatus(m.Status),
		Area:        m.Area,
		BHK:         m.BHK,
		IsDeleted:   m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFlatSlice converts a slice of model Flats
func ToDomainFlatSlice(ms []models.Flat) []domain.Flat {
	return convertSlice(ms, ToDomainFlat)
}

// ToDomainUnitStatusCountSlice converts aggregate rows.
func ToDomainUnitStatusCountSlice(ms []models.UnitStatusCount) []domain.UnitStatusCount {
	return convertSlice(ms, func(m models.UnitStatusCount) domain.UnitStatusCount {
		return domain.UnitStatusCount(m)
	})
}
