package teachers

import (
	"context"
	"testing"
	"time"

	"github.com/campuskit/campus-backend/internal/audit"
	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubTeacherRepository struct {
	pending  []models.User
	approved map[uuid.UUID]bool
	deleted  map[uuid.UUID]bool
}

func newStubTeacherRepository() *stubTeacherRepository {
	return &stubTeacherRepository{
		approved: map[uuid.UUID]bool{},
		deleted:  map[uuid.UUID]bool{},
	}
}

func (s *stubTeacherRepository) ListPending(ctx context.Context) ([]models.User, error) {
	return s.pending, nil
}

func (s *stubTeacherRepository) Approve(ctx context.Context, id uuid.UUID) (int64, error) {
	for _, u := range s.pending {
		if u.ID == id {
			s.approved[id] = true
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubTeacherRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	for _, u := range s.pending {
		if u.ID == id {
			s.deleted[id] = true
			return 1, nil
		}
	}
	return 0, nil
}

type stubAuditRecorder struct {
	entries []audit.Entry
	err     error
}

func (s *stubAuditRecorder) Record(ctx context.Context, entry audit.Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func newTestSetup(t *testing.T) (Service, *stubTeacherRepository, *stubAuditRecorder) {
	t.Helper()
	repo := newStubTeacherRepository()
	recorder := &stubAuditRecorder{}
	svc, err := NewService(ServiceParams{
		TeacherRepo: repo,
		TxRunner:    stubTxRunner{},
		TeacherRepoFactory: func(tx *gorm.DB) teacherRepository {
			return repo
		},
		AuditRepoFactory: func(tx *gorm.DB) auditRecorder {
			return recorder
		},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, repo, recorder
}

func pendingTeacher(email string) models.User {
	return models.User{
		ID:        uuid.New(),
		FullName:  "Pending Teacher",
		Email:     email,
		Phone:     "5550007777",
		Role:      enums.RoleTeacher,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func testActor() pkgAuth.Actor {
	return pkgAuth.Actor{ID: uuid.New(), Role: enums.RoleAdmin}
}

func TestListPending(t *testing.T) {
	svc, repo, _ := newTestSetup(t)
	repo.pending = []models.User{
		pendingTeacher("first@example.com"),
		pendingTeacher("second@example.com"),
	}

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending returned error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending teachers, got %d", len(pending))
	}
	if pending[0].Email != "first@example.com" {
		t.Fatalf("unexpected first entry %q", pending[0].Email)
	}
}

func TestListPendingEmpty(t *testing.T) {
	svc, _, _ := newTestSetup(t)

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending returned error: %v", err)
	}
	if pending == nil || len(pending) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", pending)
	}
}

func TestApproveTeacher(t *testing.T) {
	svc, repo, recorder := newTestSetup(t)
	teacher := pendingTeacher("tomas@example.com")
	repo.pending = []models.User{teacher}
	actor := testActor()

	msg, err := svc.Approve(context.Background(), teacher.ID, actor)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if msg != teacherApprovedMessage {
		t.Fatalf("unexpected message %q", msg)
	}
	if !repo.approved[teacher.ID] {
		t.Fatal("repository approve was not applied")
	}
	if len(recorder.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.Action != enums.AuditActionApproveTeacher {
		t.Fatalf("unexpected audit action %s", entry.Action)
	}
	if entry.EntityID != teacher.ID || entry.PerformedBy != actor.ID {
		t.Fatalf("audit entry points at wrong rows: %+v", entry)
	}
}

func TestApproveUnknownTeacher(t *testing.T) {
	svc, _, recorder := newTestSetup(t)

	_, err := svc.Approve(context.Background(), uuid.New(), testActor())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr.Message() != teacherNotFoundMessage {
		t.Fatalf("unexpected message %q", appErr.Message())
	}
	if len(recorder.entries) != 0 {
		t.Fatal("no audit entry expected for a missed update")
	}
}

func TestRejectTeacher(t *testing.T) {
	svc, repo, recorder := newTestSetup(t)
	teacher := pendingTeacher("tomas@example.com")
	repo.pending = []models.User{teacher}

	msg, err := svc.Reject(context.Background(), teacher.ID, testActor())
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if msg != teacherRejectedMessage {
		t.Fatalf("unexpected message %q", msg)
	}
	if !repo.deleted[teacher.ID] {
		t.Fatal("repository delete was not applied")
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != enums.AuditActionRejectTeacher {
		t.Fatalf("unexpected audit entries %+v", recorder.entries)
	}
}

func TestRejectUnknownTeacher(t *testing.T) {
	svc, _, _ := newTestSetup(t)

	_, err := svc.Reject(context.Background(), uuid.New(), testActor())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApproveAuditFailureAbortsTx(t *testing.T) {
	svc, repo, recorder := newTestSetup(t)
	teacher := pendingTeacher("tomas@example.com")
	repo.pending = []models.User{teacher}
	recorder.err = gorm.ErrInvalidDB

	_, err := svc.Approve(context.Background(), teacher.ID, testActor())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
