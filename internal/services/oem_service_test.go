// internal/services/oem_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDryRunDB builds a session that renders SQL without touching a database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test"}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// captureSQL records every create/delete statement the session generates.
func captureSQL(t *testing.T, db *gorm.DB) *[]string {
	t.Helper()
	stmts := &[]string{}
	capture := func(tx *gorm.DB) { *stmts = append(*stmts, tx.Statement.SQL.String()) }
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test_capture_create", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test_capture_delete", capture))
	return stmts
}

func TestNormalizeOemCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"upper-cases", "04465-42180a", "04465-42180A"},
		{"trims whitespace", "  7701208265 ", "7701208265"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOemCode(tt.input))
		})
	}
}

func TestDeriveOemCodeExplicitFieldWins(t *testing.T) {
	item := &OemIngestItem{
		Oem: " 04465-42180 ",
		Features: map[string]interface{}{
			"Referencia OEM": "SHOULD-NOT-BE-USED",
		},
	}

	code, err := DeriveOemCode(item)
	require.NoError(t, err)
	assert.Equal(t, "04465-42180", code)
}

func TestDeriveOemCodeFromFeatures(t *testing.T) {
	tests := []struct {
		name     string
		features map[string]interface{}
		want     string
	}{
		{
			"Referencia OEM key",
			map[string]interface{}{"Referencia OEM": "7701208265"},
			"7701208265",
		},
		{
			"OEM key",
			map[string]interface{}{"OEM": "06a906461l"},
			"06A906461L",
		},
		{
			"Referencia key",
			map[string]interface{}{"Referencia": " 90915-yzze1 "},
			"90915-YZZE1",
		},
		{
			"Referencia OEM preferred over OEM",
			map[string]interface{}{
				"OEM":            "SECOND",
				"Referencia OEM": "first",
			},
			"FIRST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := DeriveOemCode(&OemIngestItem{Features: tt.features})
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestDeriveOemCodeFailure(t *testing.T) {
	tests := []struct {
		name string
		item *OemIngestItem
	}{
		{"no code anywhere", &OemIngestItem{Description: "Bomba de agua"}},
		{"blank explicit field", &OemIngestItem{Oem: "   "}},
		{"non-string feature value", &OemIngestItem{
			Features: map[string]interface{}{"Referencia OEM": 12345},
		}},
		{"blank feature value", &OemIngestItem{
			Features: map[string]interface{}{"OEM": "  "},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveOemCode(tt.item)
			assert.Error(t, err)
		})
	}
}

func TestDeleteByCodeRemovesRowOutright(t *testing.T) {
	// A soft delete would keep the unique code occupied and block a later
	// re-ingestion of the same part, so the delete must be a real DELETE.
	db := newDryRunDB(t)
	stmts := captureSQL(t, db)

	svc := NewOemService(db)
	// Dry-run sessions report zero rows affected; only the generated SQL matters.
	err := svc.DeleteByCode(context.Background(), "04465-42180")
	assert.ErrorIs(t, err, ErrOemPartNotFound)

	require.Len(t, *stmts, 1)
	assert.Contains(t, (*stmts)[0], `DELETE FROM "oem_parts"`)
	assert.NotContains(t, (*stmts)[0], "deleted_at")
}

func TestOemUpsertOverwritesDeletedAt(t *testing.T) {
	// Re-ingesting a code must resurrect a soft-deleted row, or the
	// post-upsert lookup inside the ingest transaction comes back empty.
	assert.Contains(t, oemUpsertColumns, "deleted_at")
}

func TestValidateEnvelope(t *testing.T) {
	assert.ErrorIs(t, ValidateEnvelope(nil), ErrBadEnvelope)
	assert.ErrorIs(t, ValidateEnvelope(&OemIngestEnvelope{Success: true}), ErrBadEnvelope)
	assert.NoError(t, ValidateEnvelope(&OemIngestEnvelope{Success: true, Data: []OemIngestItem{}}))
	assert.NoError(t, ValidateEnvelope(&OemIngestEnvelope{Data: []OemIngestItem{{Oem: "X"}}}))
}
