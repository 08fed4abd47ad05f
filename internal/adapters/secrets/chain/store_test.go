package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mailwatch-cli/internal/domain"
	portmocks "github.com/bnema/mailwatch-cli/internal/ports/mocks"
)

const testKey = "mailwatch://work/credentials"

func newTestChain(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)
	return store, primary, fallback
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)

	primary.EXPECT().Get(mock.Anything, testKey).Return("from-keyring", nil).Once()

	value, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)

	primary.EXPECT().Get(mock.Anything, testKey).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, testKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)

	primary.EXPECT().Get(mock.Anything, testKey).Return("", errors.New("keyring unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, testKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), testKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyring unavailable")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStorePutDoesNotFallBackOnCancelledContext(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)

	primary.EXPECT().Put(mock.Anything, testKey, "v").Return(context.Canceled).Once()

	err := store.Put(context.Background(), testKey, "v")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStoreDeleteFallsBack(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)

	primary.EXPECT().Delete(mock.Anything, testKey).Return(errors.New("keyring unavailable")).Once()
	fallback.EXPECT().Delete(mock.Anything, testKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), testKey))
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, portmocks.NewMockSecretStore(t))
	require.Error(t, err)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil)
	require.Error(t, err)
}
