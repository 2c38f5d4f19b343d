package comms

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresCreateDeduplicates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	// The insert binds 17 positional parameters; pgxmock v4 requires the
	// expectation's argument count to match, so accept any values for each.
	anyArgs := make([]interface{}, 17)
	for i := range anyArgs {
		anyArgs[i] = pgxmock.AnyArg()
	}

	// ON CONFLICT DO NOTHING reports zero rows affected for the duplicate.
	mock.ExpectExec("INSERT INTO scheduled_communications").
		WithArgs(anyArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO scheduled_communications").
		WithArgs(anyArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	store := NewPostgresStore(mock)
	m := Message{
		CallID:      "call-1",
		Channel:     ChannelSMS,
		Kind:        KindInventoryLink,
		Recipient:   "+15550001111",
		Body:        "hi",
		DedupeKey:   linkDedupeKey("call-1"),
		ScheduledAt: time.Now().UTC(),
	}

	first := m
	if err := store.Create(context.Background(), &first); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	second := m
	if err := store.Create(context.Background(), &second); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresMarkSentRequiresPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE scheduled_communications").
		WithArgs(pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewPostgresStore(mock)
	if err := store.MarkSent(context.Background(), id); err != ErrMessageNotFound {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
