package notifications

import (
	"context"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/pkg/logger"
)

// OfficerDirectory resolves the officers of a department. Defined here as an
// interface because the officers feature cannot be imported without a cycle.
type OfficerDirectory interface {
	ListUserIDsByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// PushSender delivers best-effort push notifications. Implementations must
// log failures rather than return them; fan-out must never fail a request
// because a push did.
type PushSender interface {
	SendToUsers(ctx context.Context, userIDs []primitive.ObjectID, title, body string)
}

type Service struct {
	repo     *Repository
	officers OfficerDirectory
	push     PushSender // nil when push is not configured
}

func NewService(repo *Repository, officers OfficerDirectory, push PushSender) *Service {
	return &Service{
		repo:     repo,
		officers: officers,
		push:     push,
	}
}

func (s *Service) Repository() *Repository { return s.repo }

// NotifyDepartment inserts one notification per officer currently assigned
// to the department. The membership is looked up fresh on every call; there
// is no dedup, every event produces new rows. A nil department is a no-op.
// Pass exclude to skip the acting officer so nobody is notified of their
// own action.
func (s *Service) NotifyDepartment(ctx context.Context, departmentID *primitive.ObjectID, reportID primitive.ObjectID, message string, exclude *primitive.ObjectID) error {
	if departmentID == nil {
		logger.Info("notification fan-out skipped: report has no department")
		return nil
	}

	userIDs, err := s.officers.ListUserIDsByDepartment(ctx, *departmentID)
	if err != nil {
		return err
	}

	batch := buildBatch(userIDs, reportID, message, exclude)
	if len(batch) == 0 {
		return nil
	}
	pushTargets := make([]primitive.ObjectID, 0, len(batch))
	for _, n := range batch {
		pushTargets = append(pushTargets, n.OfficerID)
	}

	if err := s.repo.CreateMany(ctx, batch); err != nil {
		return err
	}

	if s.push != nil {
		s.push.SendToUsers(ctx, pushTargets, "CrimeWatch", truncate(message, 200))
	}

	return nil
}

// NotifyReporter inserts a citizen notification for the reporter of a
// report. A nil reporter (anonymous or deleted account) is a no-op.
func (s *Service) NotifyReporter(ctx context.Context, reporterID *primitive.ObjectID, reportID *primitive.ObjectID, notifType, title, message string) error {
	if reporterID == nil {
		return nil
	}

	n := &CitizenNotification{
		UserID:   *reporterID,
		Type:     notifType,
		Title:    truncate(title, 100),
		Message:  truncate(message, 300),
		ReportID: reportID,
	}

	if err := s.repo.CreateCitizen(ctx, n); err != nil {
		return err
	}

	if s.push != nil {
		s.push.SendToUsers(ctx, []primitive.ObjectID{*reporterID}, n.Title, n.Message)
	}

	return nil
}

// buildBatch materializes one notification row per recipient, skipping
// the excluded user. No dedup across calls; repeated events repeat rows.
func buildBatch(userIDs []primitive.ObjectID, reportID primitive.ObjectID, message string, exclude *primitive.ObjectID) []Notification {
	var batch []Notification
	for _, id := range userIDs {
		if exclude != nil && id == *exclude {
			continue
		}
		batch = append(batch, Notification{
			OfficerID: id,
			ReportID:  &reportID,
			Message:   truncate(message, 200),
		})
	}
	return batch
}

// truncate caps s at maxLen bytes, cutting on a rune boundary so
// multibyte input never yields invalid UTF-8.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
