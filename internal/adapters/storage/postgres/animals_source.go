package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ngo-animal-rescue/internal/domain/catalog"
)

// AnimalsSchema es la tabla que espera AnimalsSource. La carga de datos queda fuera de este servicio.
const AnimalsSchema = `
CREATE TABLE IF NOT EXISTS animals (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	species            TEXT NOT NULL DEFAULT '',
	breed              TEXT NOT NULL DEFAULT '',
	age                INTEGER NOT NULL DEFAULT 0,
	gender             TEXT NOT NULL DEFAULT '',
	health_status      TEXT NOT NULL DEFAULT '',
	vaccination_status TEXT NOT NULL DEFAULT '',
	neutered           BOOLEAN NOT NULL DEFAULT FALSE,
	adoption_status    TEXT NOT NULL DEFAULT '',
	rescue_date        DATE,
	description        TEXT NOT NULL DEFAULT '',
	medical_records    JSONB NOT NULL DEFAULT '[]'::jsonb,
	image              TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// AnimalsSource implementa catalog.Source leyendo de Postgres en lugar de la API remota.
type AnimalsSource struct {
	db *sql.DB
}

func NewAnimalsSource(db *sql.DB) *AnimalsSource {
	return &AnimalsSource{db: db}
}

func (s *AnimalsSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, AnimalsSchema); err != nil {
		return fmt.Errorf("postgres: animals schema: %w", err)
	}
	return nil
}

func (s *AnimalsSource) List(ctx context.Context) ([]catalog.Animal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id, name, species, breed, age, gender,
			health_status, vaccination_status, neutered, adoption_status,
			rescue_date, description, medical_records, image, created_at
		FROM animals
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Animal, 0)
	for rows.Next() {
		var a catalog.Animal
		var rescue sql.NullTime
		var records []byte

		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Species,
			&a.Breed,
			&a.Age,
			&a.Gender,
			&a.HealthStatus,
			&a.VaccinationStatus,
			&a.Neutered,
			&a.AdoptionStatus,
			&rescue,
			&a.Description,
			&records,
			&a.Image,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}

		if rescue.Valid {
			a.RescueDate = rescue.Time
		}
		if a.MedicalRecords, err = decodeMedicalRecords(records); err != nil {
			return nil, fmt.Errorf("postgres: animal %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeMedicalRecords: NULL o vacío => sin registros (nunca nil, el JSON de salida es []).
func decodeMedicalRecords(raw []byte) ([]catalog.MedicalRecord, error) {
	recs := []catalog.MedicalRecord{}
	if len(raw) == 0 || string(raw) == "null" {
		return recs, nil
	}
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("medical_records: %w", err)
	}
	return recs, nil
}
