package vin

import (
	"context"
	"errors"
	"testing"

	"vintrack/db"
	"vintrack/internal/provider"
	"vintrack/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSpecs struct {
	specs *provider.VehicleSpecs
	err   error
}

func (s *stubSpecs) FetchSpecs(ctx context.Context, vin string) (*provider.VehicleSpecs, error) {
	return s.specs, s.err
}

func setupService(t *testing.T, specs *stubSpecs) (*VINService, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	dbManager := db.NewDBManager()
	svc := NewVINService(specs, factory.NewVINRepository(), dbManager)
	return svc, func() {
		dbManager.Stop()
		cleanup()
	}
}

func TestVINService_Add(t *testing.T) {
	t.Run("EnrichesFromDecode", func(t *testing.T) {
		svc, cleanup := setupService(t, &stubSpecs{specs: &provider.VehicleSpecs{
			Year: "2020", Make: "Honda", Model: "Civic", ExteriorColor: "Blue",
		}})
		defer cleanup()

		saved, err := svc.Add(context.Background(), "user-1", "1hgcm82633a004352")
		require.NoError(t, err)

		// VIN is uppercased and the decoded identity attached
		assert.Equal(t, "1HGCM82633A004352", saved.VIN)
		assert.Equal(t, "Honda", saved.Make)
		assert.Equal(t, "Blue", saved.Color)
		assert.NotEmpty(t, saved.ID)
	})

	t.Run("DecodeFailureStillStoresVIN", func(t *testing.T) {
		svc, cleanup := setupService(t, &stubSpecs{err: &provider.UpstreamError{StatusCode: 500, Body: "boom"}})
		defer cleanup()

		saved, err := svc.Add(context.Background(), "user-1", "1HGCM82633A004352")
		require.NoError(t, err)
		assert.Equal(t, "1HGCM82633A004352", saved.VIN)
		assert.Empty(t, saved.Make)
	})

	t.Run("RejectsInvalidVIN", func(t *testing.T) {
		svc, cleanup := setupService(t, &stubSpecs{})
		defer cleanup()

		_, err := svc.Add(context.Background(), "user-1", "not-a-vin")
		assert.Error(t, err)
	})

	t.Run("ReAddingUpdatesInsteadOfDuplicating", func(t *testing.T) {
		svc, cleanup := setupService(t, &stubSpecs{specs: &provider.VehicleSpecs{Make: "Honda"}})
		defer cleanup()
		ctx := context.Background()

		first, err := svc.Add(ctx, "user-1", "1HGCM82633A004352")
		require.NoError(t, err)
		second, err := svc.Add(ctx, "user-1", "1HGCM82633A004352")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		all, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestVINService_Delete(t *testing.T) {
	svc, cleanup := setupService(t, &stubSpecs{specs: &provider.VehicleSpecs{}})
	defer cleanup()
	ctx := context.Background()

	saved, err := svc.Add(ctx, "user-1", "1HGCM82633A004352")
	require.NoError(t, err)

	t.Run("OtherUserCannotDelete", func(t *testing.T) {
		err := svc.Delete(ctx, "user-2", saved.ID)
		assert.True(t, errors.Is(err, db.ErrNotFound))
	})

	t.Run("OwnerCanDelete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "user-1", saved.ID))

		all, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
