// internal/services/vehicle_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recambia/recambia-backend/internal/utils"
)

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lower-cases", "1234BCD", "1234bcd"},
		{"trims whitespace", "  5678 FGH ", "5678 fgh"},
		{"already normalized", "1234bcd", "1234bcd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePlate(tt.input))
		})
	}
}

func TestNormalizePlateIdempotent(t *testing.T) {
	inputs := []string{" 1234BCD ", "M-AB-1234", "  "}
	for _, in := range inputs {
		once := NormalizePlate(in)
		assert.Equal(t, once, NormalizePlate(once))
	}
}

func TestUpsertByPlateRestoresDeletedRecord(t *testing.T) {
	// The upsert overwrites every column, deleted_at included, so a
	// previously soft-deleted plate cannot shadow the new record.
	db := newDryRunDB(t)
	stmts := captureSQL(t, db)

	svc := NewVehicleService(db)
	_, err := svc.UpsertByPlate(context.Background(), "1234BCD", &UpsertVehicleRequest{
		Source:   "dgt",
		Title:    "Seat Ibiza",
		FullName: "Seat Ibiza 1.4 TDI",
	})
	require.NoError(t, err)

	require.NotEmpty(t, *stmts)
	assert.Contains(t, (*stmts)[0], `ON CONFLICT ("plate") DO UPDATE`)
	assert.Contains(t, (*stmts)[0], `"deleted_at"="excluded"."deleted_at"`)
}

func TestUpsertVehicleRequestValidation(t *testing.T) {
	year := 2015
	badYear := 1850

	tests := []struct {
		name    string
		req     UpsertVehicleRequest
		wantErr bool
	}{
		{
			"valid minimal",
			UpsertVehicleRequest{Source: "dgt", Title: "Seat Ibiza", FullName: "Seat Ibiza 1.4 TDI"},
			false,
		},
		{
			"valid with optionals",
			UpsertVehicleRequest{
				Source: "dgt", Title: "Seat Ibiza", FullName: "Seat Ibiza 1.4 TDI",
				Year: &year,
			},
			false,
		},
		{
			"missing source",
			UpsertVehicleRequest{Title: "Seat Ibiza", FullName: "Seat Ibiza 1.4 TDI"},
			true,
		},
		{
			"missing title",
			UpsertVehicleRequest{Source: "dgt", FullName: "Seat Ibiza 1.4 TDI"},
			true,
		},
		{
			"year out of range",
			UpsertVehicleRequest{
				Source: "dgt", Title: "Seat Ibiza", FullName: "Seat Ibiza 1.4 TDI",
				Year: &badYear,
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
