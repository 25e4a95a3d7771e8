package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/google/uuid"
)

// followUpService implements the FollowUpSvcFacade interface
type followUpService struct {
	BaseService
	repos  portsrepo.RepositoryProvider
	mailer outbound.Mailer
}

// NewFollowUpService creates a new follow-up service. mailer may be nil, in
// which case reminders only produce in-app notifications.
func NewFollowUpService(repos portsrepo.RepositoryProvider, mailer outbound.Mailer, options ...ServiceOption) portssvc.FollowUpSvcFacade {
	return &followUpService{
		BaseService: newBaseService(options...),
		repos:       repos,
		mailer:      mailer,
	}
}

var _ portssvc.FollowUpSvcFacade = (*followUpService)(nil)

func followUpTimeOrDefault(t string) string {
	if t == "" {
		return domain.DefaultFollowUpTime
	}
	return t
}

func (s *followUpService) CreateFollowUp(ctx context.Context, req dto.CreateFollowUpRequest, userID string) (*domain.FollowUp, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(req.FollowUpDate)
	if err != nil {
		return nil, apperrors.Validationf("followUpDate must be a YYYY-MM-DD date")
	}

	var followUp domain.FollowUp
	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		enquiry, err := tx.EnquiryRepo.FindEnquiryByID(ctx, req.EnquiryID)
		if err != nil {
			return err
		}
		if enquiry.Status == domain.EnquiryStatusCancelled {
			return apperrors.Conflictf("cannot schedule a follow-up for a cancelled enquiry")
		}

		agentName := strings.TrimSpace(req.AgentName)
		if agentName == "" {
			agentName = s.actorName(ctx, tx.UserRepo, userID)
		}
		followUp = domain.FollowUp{
			FollowUpID:   uuid.NewString(),
			EnquiryID:    enquiry.EnquiryID,
			FollowUpDate: date,
			FollowUpTime: followUpTimeOrDefault(req.FollowUpTime),
			Status:       domain.FollowUpStatusPending,
			Notes:        strings.TrimSpace(req.Notes),
			AgentName:    agentName,
			AgentID:      userID,
			AuditFields:  domain.NewAuditFields(userID, s.now()),
		}
		if err := tx.FollowUpRepo.SaveFollowUp(ctx, followUp); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Follow-up scheduled", entityFollowUp, followUp.FollowUpID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create follow-up", slog.String("enquiry_id", req.EnquiryID))
		return nil, err
	}
	s.afterCommit(ctx)
	return &followUp, nil
}

// CompleteFollowUp appends the completion note, closes the follow-up and
// optionally schedules the next one, all in one transaction.
func (s *followUpService) CompleteFollowUp(ctx context.Context, followUpID string, req dto.CompleteFollowUpRequest, userID string) (*domain.FollowUpCompletion, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	nextDate, err := dto.ParseOptionalDate(req.NextFollowUpDate)
	if err != nil {
		return nil, apperrors.Validationf("nextFollowUpDate must be a YYYY-MM-DD date")
	}
	if nextDate != nil && nextDate.Before(s.today()) {
		return nil, apperrors.Validationf("nextFollowUpDate cannot be in the past")
	}
	remark := strings.TrimSpace(req.Remark)
	if remark == "" {
		remark = domain.DefaultCompletionRemark
	}

	var result domain.FollowUpCompletion
	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		followUp, err := tx.FollowUpRepo.FindFollowUpByID(ctx, followUpID)
		if err != nil {
			return err
		}
		if !followUp.IsPending() {
			return apperrors.Conflictf("follow-up is already completed")
		}
		if nextDate != nil {
			enquiry, err := tx.EnquiryRepo.FindEnquiryByID(ctx, followUp.EnquiryID)
			if err != nil {
				return err
			}
			if enquiry.Status == domain.EnquiryStatusCancelled {
				return apperrors.Conflictf("cannot schedule a follow-up for a cancelled enquiry")
			}
		}

		now := s.now()
		agentName := s.actorName(ctx, tx.UserRepo, userID)
		result.Node = domain.FollowUpNode{
			FollowUpNodeID:   uuid.NewString(),
			FollowUpID:       followUpID,
			FollowUpDateTime: now,
			Body:             remark,
			AgentName:        agentName,
			UserID:           userID,
		}
		if err := tx.FollowUpRepo.SaveNode(ctx, result.Node); err != nil {
			return err
		}

		followUp.Status = domain.FollowUpStatusCompleted
		followUp.CompletedAt = &now
		followUp.Touch(userID, now)
		if err := tx.FollowUpRepo.UpdateFollowUp(ctx, *followUp); err != nil {
			return err
		}
		result.Completed = *followUp

		if nextDate != nil {
			next := domain.FollowUp{
				FollowUpID:   uuid.NewString(),
				EnquiryID:    followUp.EnquiryID,
				FollowUpDate: *nextDate,
				FollowUpTime: followUpTimeOrDefault(req.NextFollowUpTime),
				Status:       domain.FollowUpStatusPending,
				Notes:        strings.TrimSpace(req.NextNotes),
				AgentName:    agentName,
				AgentID:      userID,
				AuditFields:  domain.NewAuditFields(userID, now),
			}
			if err := tx.FollowUpRepo.SaveFollowUp(ctx, next); err != nil {
				return err
			}
			result.Next = &next
		}
		return s.recordActivity(ctx, tx, userID, "Follow-up completed", entityFollowUp, followUpID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to complete follow-up", slog.String("follow_up_id", followUpID))
		return nil, err
	}

	s.afterCommit(ctx, s.event(domain.EventFollowUpCompleted, followUpID, userID, result.Completed))
	s.LogInfo(ctx, "Follow-up completed",
		slog.String("follow_up_id", followUpID),
		slog.Bool("next_scheduled", result.Next != nil))
	return &result, nil
}

// closePendingFollowUps completes every pending follow-up of an enquiry with
// the given note and returns how many were closed.
func closePendingFollowUps(ctx context.Context, tx portsrepo.Repositories, enquiryID, note, agentName, userID string, now time.Time) (int, error) {
	pending, err := tx.FollowUpRepo.ListFollowUps(ctx, portsrepo.FollowUpFilter{
		EnquiryID: enquiryID,
		Status:    domain.FollowUpStatusPending,
	})
	if err != nil {
		return 0, err
	}
	for _, followUp := range pending {
		if err := tx.FollowUpRepo.SaveNode(ctx, domain.FollowUpNode{
			FollowUpNodeID:   uuid.NewString(),
			FollowUpID:       followUp.FollowUpID,
			FollowUpDateTime: now,
			Body:             note,
			AgentName:        agentName,
			UserID:           userID,
		}); err != nil {
			return 0, err
		}
		followUp.Status = domain.FollowUpStatusCompleted
		followUp.CompletedAt = &now
		followUp.Touch(userID, now)
		if err := tx.FollowUpRepo.UpdateFollowUp(ctx, followUp); err != nil {
			return 0, err
		}
	}
	return len(pending), nil
}

func (s *followUpService) AddNote(ctx context.Context, followUpID string, body string, userID string) (*domain.FollowUpNode, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.Validationf("note cannot be empty")
	}

	var node domain.FollowUpNode
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if _, err := tx.FollowUpRepo.FindFollowUpByID(ctx, followUpID); err != nil {
			return err
		}
		node = domain.FollowUpNode{
			FollowUpNodeID:   uuid.NewString(),
			FollowUpID:       followUpID,
			FollowUpDateTime: s.now(),
			Body:             body,
			AgentName:        s.actorName(ctx, tx.UserRepo, userID),
			UserID:           userID,
		}
		return tx.FollowUpRepo.SaveNode(ctx, node)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add follow-up note", slog.String("follow_up_id", followUpID))
		return nil, err
	}
	return &node, nil
}

func (s *followUpService) GetFollowUpByID(ctx context.Context, followUpID string) (*domain.FollowUp, error) {
	return s.repos.FollowUpRepo.FindFollowUpByID(ctx, followUpID)
}

func (s *followUpService) ListFollowUps(ctx context.Context, params dto.ListFollowUpsParams) ([]domain.FollowUp, error) {
	view := domain.FollowUpView(params.View)
	if view == "" {
		view = domain.FollowUpViewAll
	}
	if !view.IsValid() {
		return nil, apperrors.Validationf("unknown follow-up view %q", params.View)
	}
	status := domain.FollowUpStatus(params.Status)
	if status != "" && status != domain.FollowUpStatusPending && status != domain.FollowUpStatusCompleted {
		return nil, apperrors.Validationf("unknown follow-up status %q", params.Status)
	}

	followUps, err := s.repos.FollowUpRepo.ListFollowUps(ctx, portsrepo.FollowUpFilter{
		EnquiryID: params.EnquiryID,
		Status:    status,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list follow-ups")
		return nil, err
	}
	return domain.FilterFollowUps(followUps, view, s.today(), s.loc()), nil
}

func (s *followUpService) ListNodes(ctx context.Context, followUpID string) ([]domain.FollowUpNode, error) {
	if _, err := s.repos.FollowUpRepo.FindFollowUpByID(ctx, followUpID); err != nil {
		return nil, err
	}
	return s.repos.FollowUpRepo.ListNodes(ctx, followUpID)
}

func (s *followUpService) GetTimeline(ctx context.Context, followUpID string) ([]domain.TimelineEntry, error) {
	followUp, err := s.repos.FollowUpRepo.FindFollowUpByID(ctx, followUpID)
	if err != nil {
		return nil, err
	}
	nodes, err := s.repos.FollowUpRepo.ListNodes(ctx, followUpID)
	if err != nil {
		return nil, err
	}
	return domain.BuildTimeline(*followUp, nodes), nil
}

func (s *followUpService) GetStats(ctx context.Context) (domain.FollowUpStats, error) {
	followUps, err := s.repos.FollowUpRepo.ListFollowUps(ctx, portsrepo.FollowUpFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load follow-ups for stats")
		return domain.FollowUpStats{}, err
	}
	return domain.ComputeFollowUpStats(followUps, s.today(), s.loc()), nil
}

// startOfDay is local midnight of the current day, the cut-off for "already
// reminded today".
func (s *followUpService) startOfDay() time.Time {
	y, m, d := s.now().In(s.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc())
}

func (s *followUpService) SendDueReminders(ctx context.Context) (int, error) {
	today := s.today()
	due, err := s.repos.FollowUpRepo.ListFollowUps(ctx, portsrepo.FollowUpFilter{
		Status:        domain.FollowUpStatusPending,
		DueOnOrBefore: &today,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list due follow-ups")
		return 0, err
	}

	since := s.startOfDay()
	sent := 0
	for _, followUp := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		created, err := s.remind(ctx, followUp, today, since)
		if err != nil {
			s.LogError(ctx, err, "Failed to send follow-up reminder", slog.String("follow_up_id", followUp.FollowUpID))
			continue
		}
		if created {
			sent++
		}
	}
	if sent > 0 {
		s.LogInfo(ctx, "Follow-up reminders sent", slog.Int("count", sent))
	}
	return sent, nil
}

// remind creates the reminder notification for one follow-up unless one was
// already created today, then e-mails the agent.
func (s *followUpService) remind(ctx context.Context, followUp domain.FollowUp, today, since time.Time) (bool, error) {
	var (
		notification domain.Notification
		agent        *domain.User
		created      bool
	)
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		exists, err := tx.NotificationRepo.NotificationExists(ctx, domain.NotificationEnquiryFollowUp, followUp.FollowUpID, since)
		if err != nil || exists {
			return err
		}

		clientName := "a client"
		if enquiry, err := tx.EnquiryRepo.FindEnquiryByID(ctx, followUp.EnquiryID); err == nil {
			if client, err := tx.ClientRepo.FindClientByID(ctx, enquiry.ClientID); err == nil {
				clientName = client.ClientName
			}
		}
		title := "Follow-up due today"
		if followUp.IsOverdue(today) {
			title = "Follow-up overdue"
		}
		notification = domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         followUp.AgentID,
			Type:           domain.NotificationEnquiryFollowUp,
			Title:          title,
			Message: fmt.Sprintf("Follow up with %s (scheduled %s at %s)",
				clientName, followUp.FollowUpDate.Format(domain.DateLayout), followUp.FollowUpTime),
			EntityID:  followUp.FollowUpID,
			CreatedAt: s.now(),
		}
		if err := tx.NotificationRepo.SaveNotification(ctx, notification); err != nil {
			return err
		}
		if followUp.AgentID != "" {
			if user, err := tx.UserRepo.FindUserByID(ctx, followUp.AgentID); err == nil {
				agent = user
			}
		}
		created = true
		return nil
	})
	if err != nil || !created {
		return false, err
	}

	s.afterCommit(ctx, s.event(domain.EventFollowUpReminded, followUp.FollowUpID, "", notification))
	if s.mailer != nil && agent != nil && agent.Email != "" {
		msg := outbound.MailMessage{
			To:      []string{agent.Email},
			Subject: notification.Title,
			HTMLBody: fmt.Sprintf("<p>Hi %s,</p><p>%s.</p>",
				html.EscapeString(agent.Name), html.EscapeString(notification.Message)),
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.LogError(ctx, err, "Failed to e-mail follow-up reminder",
				slog.String("follow_up_id", followUp.FollowUpID),
				slog.String("user_id", agent.UserID))
		}
	}
	return true, nil
}
