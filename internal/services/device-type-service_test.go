package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	apperrors "sdo-ticketing/pkg/errors"
)

func TestDeviceTypeCreate_AndList(t *testing.T) {
	repo := newFakeDeviceTypeRepo()
	svc := NewDeviceTypeService(repo, zap.NewNop())

	id, err := svc.Create(context.Background(), dto.CreateDeviceTypeDTO{Name: "Laptop"})
	require.NoError(t, err)
	require.NotZero(t, id)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Laptop", listed[0].Name)
}

func TestDeviceTypeCreate_DuplicateNameConflicts(t *testing.T) {
	repo := newFakeDeviceTypeRepo()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "device_types_name_key"}
	svc := NewDeviceTypeService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateDeviceTypeDTO{Name: "Laptop"})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindConflict, httpErr.Kind)
}

func TestDeviceTypeDelete_UnknownIDIsNotFound(t *testing.T) {
	svc := NewDeviceTypeService(newFakeDeviceTypeRepo(), zap.NewNop())

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
