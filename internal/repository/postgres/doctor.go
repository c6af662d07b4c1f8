package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medbook/clinic-api/internal/model"
)

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, name, email, specialty, available_slots
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	err := r.GetDB().GetContext(ctx, &doctor, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByName(ctx context.Context, name string) (*model.Doctor, error) {
	query := `
		SELECT id, name, email, specialty, available_slots
		FROM doctors
		WHERE name = $1
	`
	var doctor model.Doctor
	err := r.GetDB().GetContext(ctx, &doctor, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor by name: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.DoctorListing, error) {
	query := `
		SELECT id, name, specialty
		FROM doctors
		ORDER BY name ASC
	`
	var doctors []*model.DoctorListing
	err := r.GetDB().SelectContext(ctx, &doctors, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListFull(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, name, email, specialty, available_slots
		FROM doctors
		ORDER BY name ASC
	`
	var doctors []*model.Doctor
	err := r.GetDB().SelectContext(ctx, &doctors, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// DeleteCascade removes the doctor's appointments, the profile and the
// identity record in one transaction, so a failure midway rolls back all
// three deletes.
func (r *doctorRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE doctor_id = $1`, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return model.ErrDoctorNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrDoctorNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}
