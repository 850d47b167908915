package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marginote/shelfsync/internal/core/domain"
)

// mockSourceClient implements driven.SourceClient for testing.
type mockSourceClient struct {
	validateErr error
}

func (m *mockSourceClient) Validate(_ context.Context) error {
	return m.validateErr
}

func (m *mockSourceClient) ListShelf(_ context.Context) ([]domain.Book, error) {
	return nil, nil
}

func (m *mockSourceClient) ListNotebooks(_ context.Context) ([]domain.Book, error) {
	return nil, nil
}

func (m *mockSourceClient) FetchBookDetail(_ context.Context, _ string) (*domain.BookDetail, error) {
	return nil, domain.ErrNotFound
}

func setupAuthTest(validateErr error) func() {
	old := sourceClient
	sourceClient = &mockSourceClient{validateErr: validateErr}
	return func() {
		sourceClient = old
	}
}

func TestAuthCheck_Valid(t *testing.T) {
	cleanup := setupAuthTest(nil)
	defer cleanup()

	out, err := execute(t, "auth", "check")

	assert.NoError(t, err)
	assert.Contains(t, out, "Session OK.")
}

func TestAuthCheck_Expired(t *testing.T) {
	cleanup := setupAuthTest(domain.ErrSessionExpired)
	defer cleanup()

	_, err := execute(t, "auth", "check")

	assert.ErrorContains(t, err, "session expired")
}
