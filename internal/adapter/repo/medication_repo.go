// Package repo contains Postgres-backed repositories. Only the medication
// store persists anything; the orchestration pipeline itself is stateless.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"emoticare/internal/domain"
	"emoticare/internal/infra"
	"emoticare/internal/sqlinline"
)

// MedicationRepository stores patient medication records.
type MedicationRepository struct {
	sql infra.SQLExecutor
}

func NewMedicationRepository(sql infra.SQLExecutor) *MedicationRepository {
	return &MedicationRepository{sql: sql}
}

// Create inserts a new record, assigning an ID when absent.
func (r *MedicationRepository) Create(ctx context.Context, rec *domain.MedicationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.IsActive = true
	row := r.sql.QueryRow(ctx, sqlinline.QInsertMedication,
		rec.ID,
		rec.PatientID,
		rec.Name,
		rec.Dosage,
		rec.Frequency,
		nullable(rec.Duration),
		nullable(rec.Instructions),
		nullable(rec.StartDate),
		nullable(rec.EndDate),
	)
	return row.Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// GetByID fetches a record by its identifier.
func (r *MedicationRepository) GetByID(ctx context.Context, id string) (*domain.MedicationRecord, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QGetMedication, id)
	rec, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ListByPatient returns all records for a patient, newest first.
func (r *MedicationRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.MedicationRecord, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListMedicationsByPatient, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.MedicationRecord{}
	for rows.Next() {
		rec, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Update applies the non-nil fields of upd to a record.
func (r *MedicationRepository) Update(ctx context.Context, id string, upd domain.MedicationUpdate) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateMedication,
		id,
		upd.Name,
		upd.Dosage,
		upd.Frequency,
		upd.Duration,
		upd.Instructions,
		upd.StartDate,
		upd.EndDate,
		upd.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a record.
func (r *MedicationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteMedication, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMedication(row pgx.Row) (*domain.MedicationRecord, error) {
	var rec domain.MedicationRecord
	var duration, instructions, startDate, endDate *string
	if err := row.Scan(
		&rec.ID,
		&rec.PatientID,
		&rec.Name,
		&rec.Dosage,
		&rec.Frequency,
		&duration,
		&instructions,
		&startDate,
		&endDate,
		&rec.IsActive,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.Duration = deref(duration)
	rec.Instructions = deref(instructions)
	rec.StartDate = deref(startDate)
	rec.EndDate = deref(endDate)
	return &rec, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
