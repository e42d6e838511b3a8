package medicine

import (
	"context"
	"database/sql"
	"errors"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/user"
	"medremind/internal/db"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const medicineColumns = "id, user_id, name, dosage, time_of_day, last_confirmed, attachment_ref, created_at"

type PgxMedicineRepository struct {
	db db.DBTX
}

func NewPgxMedicineRepository(db db.DBTX) *PgxMedicineRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxMedicineRepository{db: db}
}

func (r *PgxMedicineRepository) Create(
	ctx context.Context,
	input medicine.CreateInput,
) (m medicine.Medicine, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO medicine (user_id, name, dosage, time_of_day, attachment_ref, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+medicineColumns,
		int64(input.OwnerID),
		input.Name,
		input.Dosage,
		input.TimeOfDay.String(),
		sql.NullString{String: input.AttachmentRef.Value, Valid: input.AttachmentRef.IsPresent},
		input.CreatedAt,
	)
	return scanMedicine(row)
}

func (r *PgxMedicineRepository) Lock(ctx context.Context, id medicine.ID) error {
	// Works only within a DB transaction.
	_, err := r.db.Exec(ctx, "SELECT id FROM medicine WHERE id = $1 FOR UPDATE", int64(id))
	return err
}

func (r *PgxMedicineRepository) GetByID(
	ctx context.Context,
	id medicine.ID,
) (m medicine.Medicine, err error) {
	row := r.db.QueryRow(
		ctx,
		"SELECT "+medicineColumns+" FROM medicine WHERE id = $1",
		int64(id),
	)
	m, err = scanMedicine(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, medicine.ErrMedicineDoesNotExist
	}
	return m, err
}

func (r *PgxMedicineRepository) ReadByOwner(
	ctx context.Context,
	owner user.ID,
) ([]medicine.Medicine, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT "+medicineColumns+" FROM medicine WHERE user_id = $1 ORDER BY time_of_day, id",
		int64(owner),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMedicines(rows)
}

func (r *PgxMedicineRepository) ReadDue(
	ctx context.Context,
	timeOfDay medicine.ClockTime,
) ([]medicine.Medicine, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT "+medicineColumns+" FROM medicine WHERE time_of_day = $1 ORDER BY id",
		timeOfDay.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMedicines(rows)
}

func (r *PgxMedicineRepository) SetLastConfirmed(
	ctx context.Context,
	id medicine.ID,
	at time.Time,
) (m medicine.Medicine, err error) {
	row := r.db.QueryRow(
		ctx,
		"UPDATE medicine SET last_confirmed = $2 WHERE id = $1 RETURNING "+medicineColumns,
		int64(id),
		at,
	)
	m, err = scanMedicine(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, medicine.ErrMedicineDoesNotExist
	}
	return m, err
}

func (r *PgxMedicineRepository) Delete(ctx context.Context, id medicine.ID) error {
	var deletedID int64
	err := r.db.QueryRow(
		ctx,
		"DELETE FROM medicine WHERE id = $1 RETURNING id",
		int64(id),
	).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return medicine.ErrMedicineDoesNotExist
	}
	return err
}

func scanMedicine(row pgx.Row) (m medicine.Medicine, err error) {
	var (
		id            int64
		ownerID       int64
		rawTimeOfDay  string
		lastConfirmed sql.NullTime
		attachmentRef sql.NullString
	)
	err = row.Scan(&id, &ownerID, &m.Name, &m.Dosage, &rawTimeOfDay, &lastConfirmed, &attachmentRef, &m.CreatedAt)
	if err != nil {
		return m, err
	}
	m.ID = medicine.ID(id)
	m.OwnerID = user.ID(ownerID)
	m.TimeOfDay, err = medicine.ParseClockTime(rawTimeOfDay)
	if err != nil {
		return m, err
	}
	m.LastConfirmed = c.NewOptional(lastConfirmed.Time, lastConfirmed.Valid)
	m.AttachmentRef = c.NewOptional(attachmentRef.String, attachmentRef.Valid)
	return m, m.Validate()
}

func scanMedicines(rows pgx.Rows) ([]medicine.Medicine, error) {
	medicines := make([]medicine.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		medicines = append(medicines, m)
	}
	return medicines, rows.Err()
}

type PgxIntakeRepository struct {
	db db.DBTX
}

func NewPgxIntakeRepository(db db.DBTX) *PgxIntakeRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxIntakeRepository{db: db}
}

func (r *PgxIntakeRepository) Create(ctx context.Context, input medicine.CreateIntakeInput) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO medicine_intake (medicine_id, taken_at) VALUES ($1, $2)",
		int64(input.MedicineID),
		input.TakenAt,
	)
	return err
}

func (r *PgxIntakeRepository) ReadByMedicine(
	ctx context.Context,
	id medicine.ID,
) ([]time.Time, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT taken_at FROM medicine_intake WHERE medicine_id = $1 ORDER BY taken_at, id",
		int64(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	intakes := make([]time.Time, 0)
	for rows.Next() {
		var takenAt time.Time
		if err := rows.Scan(&takenAt); err != nil {
			return nil, err
		}
		intakes = append(intakes, takenAt)
	}
	return intakes, rows.Err()
}

func (r *PgxIntakeRepository) ReadByMedicines(
	ctx context.Context,
	ids []medicine.ID,
) (map[medicine.ID][]time.Time, error) {
	intakes := make(map[medicine.ID][]time.Time, len(ids))
	if len(ids) == 0 {
		return intakes, nil
	}

	rawIDs := make([]int64, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, int64(id))
	}
	var idArray pgtype.Int8Array
	if err := idArray.Set(rawIDs); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT medicine_id, taken_at FROM medicine_intake
		 WHERE medicine_id = ANY($1) ORDER BY taken_at, id`,
		&idArray,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			medicineID int64
			takenAt    time.Time
		)
		if err := rows.Scan(&medicineID, &takenAt); err != nil {
			return nil, err
		}
		id := medicine.ID(medicineID)
		intakes[id] = append(intakes[id], takenAt)
	}
	return intakes, rows.Err()
}
