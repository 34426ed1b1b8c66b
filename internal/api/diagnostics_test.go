package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/healthyliving/internal/mocks"
	"github.com/mmynk/healthyliving/internal/storage"
)

func getDiagnostics(t *testing.T, d *Diagnostics) diagnosticsResponse {
	t.Helper()
	rr := do(t, d, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, rr.Code)
	return decode[diagnosticsResponse](t, rr)
}

func TestDiagnostics_NoGateway(t *testing.T) {
	resp := getDiagnostics(t, &Diagnostics{})

	require.Equal(t, "✅ Running", resp.Backend)
	require.Equal(t, "❌ Database module not found", resp.Database)
	require.Equal(t, "❌ Not Set", resp.DatabaseURL)
	require.Equal(t, "❌ Not Set", resp.DatabaseName)
	require.Equal(t, "Not Connected", resp.ConnectionStatus)
	require.Empty(t, resp.Collections)
}

func TestDiagnostics_Disconnected(t *testing.T) {
	resp := getDiagnostics(t, &Diagnostics{
		Store:          storage.NewDisconnected("DATABASE_NAME not set"),
		DatabaseURLSet: true,
	})

	require.Equal(t, "⚠️  Available but not initialized", resp.Database)
	require.Equal(t, "✅ Set", resp.DatabaseURL)
	require.Equal(t, "❌ Not Set", resp.DatabaseName)
	require.Equal(t, "Not Connected", resp.ConnectionStatus)
}

func TestDiagnostics_SQLite(t *testing.T) {
	store := newSQLiteGateway(t)
	h := newTestHandler(t, store)
	createGroup(t, h, "Walkers")

	resp := getDiagnostics(t, &Diagnostics{Store: store})
	require.Equal(t, "✅ Connected & Working", resp.Database)
	require.Equal(t, "Connected", resp.ConnectionStatus)
	require.Equal(t, []string{"group"}, resp.Collections)
}

func TestDiagnostics_Mocked(t *testing.T) {
	longErr := errors.New(strings.Repeat("x", 80))

	t.Run("should truncate ping errors", func(t *testing.T) {
		store := mocks.NewMockGateway(gomock.NewController(t))
		store.EXPECT().Ping(gomock.Any()).Return(longErr)

		resp := getDiagnostics(t, &Diagnostics{Store: store})
		require.Equal(t, "❌ Error: "+strings.Repeat("x", 50), resp.Database)
		require.Equal(t, "Not Connected", resp.ConnectionStatus)
	})

	t.Run("should show driver errors for a configured backend", func(t *testing.T) {
		store := mocks.NewMockGateway(gomock.NewController(t))
		store.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("%w: server selection timeout", storage.ErrUnavailable))

		resp := getDiagnostics(t, &Diagnostics{Store: store})
		require.Equal(t, "❌ Error: storage unavailable: server selection timeout", resp.Database)
		require.Equal(t, "Not Connected", resp.ConnectionStatus)
	})

	t.Run("should report listing failures", func(t *testing.T) {
		store := mocks.NewMockGateway(gomock.NewController(t))
		store.EXPECT().Ping(gomock.Any()).Return(nil)
		store.EXPECT().ListCollectionNames(gomock.Any()).Return(nil, longErr)

		resp := getDiagnostics(t, &Diagnostics{Store: store})
		require.Equal(t, "⚠️  Connected but Error: "+strings.Repeat("x", 50), resp.Database)
		require.Equal(t, "Connected", resp.ConnectionStatus)
	})

	t.Run("should cap the collection list", func(t *testing.T) {
		names := make([]string, 15)
		for i := range names {
			names[i] = fmt.Sprintf("c%02d", i)
		}
		store := mocks.NewMockGateway(gomock.NewController(t))
		store.EXPECT().Ping(gomock.Any()).Return(nil)
		store.EXPECT().ListCollectionNames(gomock.Any()).Return(names, nil)

		resp := getDiagnostics(t, &Diagnostics{Store: store})
		require.Equal(t, "✅ Connected & Working", resp.Database)
		require.Equal(t, names[:10], resp.Collections)
	})

	t.Run("should recover from panics", func(t *testing.T) {
		store := mocks.NewMockGateway(gomock.NewController(t))
		store.EXPECT().Ping(gomock.Any()).DoAndReturn(func(context.Context) error {
			panic("driver exploded")
		})

		resp := getDiagnostics(t, &Diagnostics{Store: store})
		require.Equal(t, "❌ Error: driver exploded", resp.Database)
	})
}
