package mapping

import (
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:     d.ClientID,
		ClientName:   d.ClientName,
		Email:        d.Email,
		MobileNumber: d.MobileNumber,
		DOB:          d.DOB,
		City:         d.City,
		Address:      d.Address,
		Occupation:   d.Occupation,
		Company:      d.Company,
		PanNo:        d.PanNo,
		AadharNo:     d.AadharNo,
		IsDeleted:    d.IsDeleted,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:     m.ClientID,
		ClientName:   m.ClientName,
		Email:        m.Email,
		MobileNumber: m.MobileNumber,
		DOB:          m.DOB,
		City:         m.City,
		Address:      m.Address,
		Occupation:   m.Occupation,
		Company:      m.Company,
		PanNo:        m.PanNo,
		AadharNo:     m.AadharNo,
		IsDeleted:    m.IsDeleted,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	return convertSlice(ms, ToDomainClient)
}

// ToModelEnquiry converts a domain Enquiry to a model Enquiry
func ToModelEnquiry(d domain.Enquiry) models.Enquiry {
	return models.Enquiry{
		EnquiryID:     d.EnquiryID,
		ProjectID:     d.ProjectID,
		ClientID:      d.ClientID,
		PropertyID:    optionalString(d.PropertyID),
		Budget:        d.Budget,
		Reference:     d.Reference,
		ReferenceName: d.ReferenceName,
		Status:        string(d.Status),
		IsDeleted:     d.IsDeleted,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEnquiry converts a model Enquiry to a domain Enquiry
func ToDomainEnquiry(m models.Enquiry) domain.Enquiry {
	return domain.Enquiry{
		EnquiryID:     m.EnquiryID,
		ProjectID:     m.ProjectID,
		ClientID:      m.ClientID,
		PropertyID:    derefString(m.PropertyID),
		Budget:        m.Budget,
		Reference:     m.Reference,
		ReferenceName: m.ReferenceName,
		Status:        domain.EnquiryStatus(m.Status),
		IsDeleted:     m.IsDeleted,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEnquirySlice converts a slice of model Enquiries
func ToDomainEnquirySlice(ms []models.Enquiry) []domain.Enquiry {
	return convertSlice(ms, ToDomainEnquiry)
}

// ToModelEnquiryRemark converts a domain EnquiryRemark
func ToModelEnquiryRemark(d domain.EnquiryRemark) models.EnquiryRemark {
	return models.EnquiryRemark(d)
}

// ToDomainEnquiryRemarkSlice converts a slice of model EnquiryRemarks
func ToDomainEnquiryRemarkSlice(ms []models.EnquiryRemark) []domain.EnquiryRemark {
	return convertSlice(ms, func(m models.EnquiryRemark) domain.EnquiryRemark {
		return domain.EnquiryRemark(m)
	})
}

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:          d.BookingID,
		ProjectID:          d.ProjectID,
		ClientID:           d.ClientID,
		PropertyID:         d.PropertyID,
		EnquiryID:          d.EnquiryID,
		BookingAmount:      d.BookingAmount,
		AgreementAmount:    d.AgreementAmount,
		GSTPercentage:      d.GSTPercentage,
		BookingDate:        d.BookingDate,
		ChequeNo:           d.ChequeNo,
		IsRegistered:       d.IsRegistered,
		RegistrationDate:   d.RegistrationDate,
		IsCancelled:        d.IsCancelled,
		CancellationReason: d.CancellationReason,
		CancelledAt:        d.CancelledAt,
		IsDeleted:          d.IsDeleted,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:          m.BookingID,
		ProjectID:          m.ProjectID,
		ClientID:           m.ClientID,
		PropertyID:         m.PropertyID,
		EnquiryID:          m.EnquiryID,
		BookingAmount:      m.BookingAmount,
		AgreementAmount:    m.AgreementAmount,
		GSTPercentage:      m.GSTPercentage,
		BookingDate:        m.BookingDate,
		ChequeNo:           m.ChequeNo,
		IsRegistered:       m.IsRegistered,
		RegistrationDate:   m.RegistrationDate,
		IsCancelled:        m.IsCancelled,
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		IsDeleted:          m.IsDeleted,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBookingSlice converts a slice of model Bookings
func ToDomainBookingSlice(ms []models.Booking) []domain.Booking {
	return convertSlice(ms, ToDomainBooking)
}

// ToModelFollowUp converts a domain FollowUp to a model FollowUp
func ToModelFollowUp(d domain.FollowUp) models.FollowUp {
	return models.FollowUp{
		FollowUpID:   d.FollowUpID,
		EnquiryID:    d.EnquiryID,
		FollowUpDate: d.FollowUpDate,
		FollowUpTime: d.FollowUpTime,
		Status:       string(d.Status),
		Notes:        d.Notes,
		AgentName:    d.AgentName,
		AgentID:      d.AgentID,
		CompletedAt:  d.CompletedAt,
		IsDeleted:    d.IsDeleted,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFollowUp converts a model FollowUp to a domain FollowUp
func ToDomainFollowUp(m models.FollowUp) domain.FollowUp {
	return domain.FollowUp{
		FollowUpID:   m.FollowUpID,
		EnquiryID:    m.EnquiryID,
		FollowUpDate: m.FollowUpDate,
		FollowUpTime: m.FollowUpTime,
		Status:       domain.FollowUpStatus(m.Status),
		Notes:        m.Notes,
		AgentName:    m.AgentName,
		AgentID:      m.AgentID,
		CompletedAt:  m.CompletedAt,
		IsDeleted:    m.IsDeleted,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFollowUpSlice converts a slice of model FollowUps
func ToDomainFollowUpSlice(ms []models.FollowUp) []domain.FollowUp {
	return convertSlice(ms, ToDomainFollowUp)
}

// ToModelFollowUpNode converts a domain FollowUpNode
func ToModelFollowUpNode(d domain.FollowUpNode) models.FollowUpNode {
	return models.FollowUpNode(d)
}

// ToDomainFollowUpNodeSlice converts a slice of model FollowUpNodes
func ToDomainFollowUpNodeSlice(ms []models.FollowUpNode) []domain.FollowUpNode {
	return convertSlice(ms, func(m models.FollowUpNode) domain.FollowUpNode {
		return domain.FollowUpNode(m)
	})
}

// ToModelNotification converts a domain Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		UserID:         optionalString(d.UserID),
		Type:           string(d.Type),
		Title:          d.Title,
		Message:        d.Message,
		EntityID:       d.EntityID,
		IsRead:         d.IsRead,
		IsDeleted:      d.IsDeleted,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotificationSlice converts a slice of model Notifications
func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	return convertSlice(ms, func(m models.Notification) domain.Notification {
		return domain.Notification{
			NotificationID: m.NotificationID,
			UserID:         derefString(m.UserID),
			Type:           domain.NotificationType(m.Type),
			Title:          m.Title,
			Message:        m.Message,
			EntityID:       m.EntityID,
			IsRead:         m.IsRead,
			IsDeleted:      m.IsDeleted,
			CreatedAt:      m.CreatedAt,
		}
	})
}

// ToDomainActivityLogSlice converts a slice of model ActivityLogs
func ToDomainActivityLogSlice(ms []models.ActivityLog) []domain.ActivityLog {
	return convertSlice(ms, func(m models.ActivityLog) domain.ActivityLog {
		return domain.ActivityLog(m)
	})
}
