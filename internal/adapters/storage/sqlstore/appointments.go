package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/records"
)

const selectAppointments = `
	SELECT a.id, a.client_id, a.pet_id, a.veterinarian_id, a.appointment_date, a.reason,
		c.first_name, c.last_name, p.name, v.full_name
	FROM appointments a
	JOIN clients c ON c.id = a.client_id
	JOIN pets p ON p.id = a.pet_id
	LEFT JOIN veterinarians v ON v.id = a.veterinarian_id`

const selectAppointmentRemedies = `
	SELECT ar.appointment_id, r.id, r.name
	FROM appointment_remedies ar
	JOIN remedies r ON r.id = ar.remedy_id`

type appointmentRepo struct {
	s *DB
}

// Appointments persiste la cita y su tabla de remedios en una transacción.
func (s *DB) Appointments() records.Repository[appointments.Appointment] {
	return &appointmentRepo{s: s}
}

func scanAppointment(sc scanner) (appointments.Appointment, error) {
	var (
		a       appointments.Appointment
		vetID   sql.NullString
		vetName sql.NullString
		reason  string
	)
	err := sc.Scan(&a.ID, &a.ClientID, &a.PetID, &vetID, &a.Date, &reason,
		&a.ClientFirstName, &a.ClientLastName, &a.PetName, &vetName)
	a.VeterinarianID = vetID.String
	a.VeterinarianName = vetName.String
	a.Reason = appointments.Reason(reason)
	a.RemedyIDs = []string{}
	a.RemedyNames = []string{}
	return a, err
}

func (r *appointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	rows, err := r.s.db.QueryContext(ctx, selectAppointments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	index := make(map[string]int)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := r.s.db.QueryContext(ctx, selectAppointmentRemedies+" ORDER BY r.name")
	if err != nil {
		return nil, err
	}
	defer links.Close()

	for links.Next() {
		var aid, rid, name string
		if err := links.Scan(&aid, &rid, &name); err != nil {
			return nil, err
		}
		if i, ok := index[aid]; ok {
			out[i].RemedyIDs = append(out[i].RemedyIDs, rid)
			out[i].RemedyNames = append(out[i].RemedyNames, name)
		}
	}
	return out, links.Err()
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(selectAppointments+" WHERE a.id = ?"), id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, records.ErrNotFound
	}
	if err != nil {
		return appointments.Appointment{}, err
	}

	links, err := r.s.db.QueryContext(ctx,
		r.s.rebind(selectAppointmentRemedies+" WHERE ar.appointment_id = ? ORDER BY r.name"), id)
	if err != nil {
		return appointments.Appointment{}, err
	}
	defer links.Close()

	for links.Next() {
		var aid, rid, name string
		if err := links.Scan(&aid, &rid, &name); err != nil {
			return appointments.Appointment{}, err
		}
		a.RemedyIDs = append(a.RemedyIDs, rid)
		a.RemedyNames = append(a.RemedyNames, name)
	}
	return a, links.Err()
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.s.rebind(`
			INSERT INTO appointments (id, client_id, pet_id, veterinarian_id, appointment_date, reason)
			VALUES (?, ?, ?, ?, ?, ?)`),
			a.ID, a.ClientID, a.PetID, nullable(a.VeterinarianID), a.Date, string(a.Reason),
		)
		if err != nil {
			return err
		}
		return r.linkRemedies(ctx, tx, a)
	})
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.s.rebind(`
			UPDATE appointments
			SET client_id = ?, pet_id = ?, veterinarian_id = ?, appointment_date = ?, reason = ?
			WHERE id = ?`),
			a.ClientID, a.PetID, nullable(a.VeterinarianID), a.Date, string(a.Reason), a.ID,
		)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return records.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM appointment_remedies WHERE appointment_id = ?`), a.ID); err != nil {
			return err
		}
		return r.linkRemedies(ctx, tx, a)
	})
}

// Delete deja que ON DELETE CASCADE limpie appointment_remedies.
func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`DELETE FROM appointments WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *appointmentRepo) linkRemedies(ctx context.Context, tx *sql.Tx, a appointments.Appointment) error {
	q := r.s.rebind(`INSERT INTO appointment_remedies (appointment_id, remedy_id) VALUES (?, ?)`)
	for _, rid := range a.RemedyIDs {
		if _, err := tx.ExecContext(ctx, q, a.ID, rid); err != nil {
			return err
		}
	}
	return nil
}

func (r *appointmentRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
