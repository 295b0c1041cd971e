package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/platform/logger"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// PostgresCatalogStore implements the store.CatalogStore interface
// using a PostgreSQL database as the storage backend. The catalog is
// read-only at runtime; rows come from seed migrations.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL implementation of the
// CatalogStore interface. If logger is nil, a default logger will be used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Ensure PostgresCatalogStore implements store.CatalogStore interface
var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

// ListMarks implements store.CatalogStore.ListMarks
func (s *PostgresCatalogStore) ListMarks(ctx context.Context) ([]domain.VehicleMark, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM vehicle_marks ORDER BY name`)
	if err != nil {
		log.Error("failed to list marks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	marks := []domain.VehicleMark{}
	for rows.Next() {
		var mark domain.VehicleMark
		if err := rows.Scan(&mark.ID, &mark.Name); err != nil {
			log.Error("failed to scan mark row", slog.String("error", err.Error()))
			return nil, err
		}
		marks = append(marks, mark)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return marks, nil
}

// ListMarksWithModels implements store.CatalogStore.ListMarksWithModels
// It uses a single left join so marks without models still appear, and groups
// rows in memory preserving the name ordering of the query.
func (s *PostgresCatalogStore) ListMarksWithModels(ctx context.Context) ([]domain.MarkWithModels, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT m.id, m.name, mo.id, mo.name
		FROM vehicle_marks m
		LEFT JOIN vehicle_models mo ON mo.mark_id = m.id
		ORDER BY m.name, mo.name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list marks with models", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	result := []domain.MarkWithModels{}
	index := map[uuid.UUID]int{}

	for rows.Next() {
		var markID uuid.UUID
		var markName string
		var modelID uuid.NullUUID
		var modelName sql.NullString

		if err := rows.Scan(&markID, &markName, &modelID, &modelName); err != nil {
			log.Error("failed to scan mark/model row", slog.String("error", err.Error()))
			return nil, err
		}

		i, ok := index[markID]
		if !ok {
			i = len(result)
			index[markID] = i
			result = append(result, domain.MarkWithModels{
				VehicleMark: domain.VehicleMark{ID: markID, Name: markName},
				Models:      []domain.VehicleModel{},
			})
		}

		if modelID.Valid {
			result[i].Models = append(result[i].Models, domain.VehicleModel{
				ID:       modelID.UUID,
				Name:     modelName.String,
				MarkID:   markID,
				MarkName: markName,
			})
		}
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return result, nil
}

// ListModelsByMark implements store.CatalogStore.ListModelsByMark
func (s *PostgresCatalogStore) ListModelsByMark(ctx context.Context, markID uuid.UUID) ([]domain.VehicleModel, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT mo.id, mo.name, mo.mark_id, m.name
		FROM vehicle_models mo
		JOIN vehicle_marks m ON m.id = mo.mark_id
		WHERE mo.mark_id = $1
		ORDER BY mo.name
	`
	rows, err := s.db.QueryContext(ctx, query, markID)
	if err != nil {
		log.Error("failed to list models by mark",
			slog.String("error", err.Error()),
			slog.String("mark_id", markID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	models := []domain.VehicleModel{}
	for rows.Next() {
		var model domain.VehicleModel
		if err := rows.Scan(&model.ID, &model.Name, &model.MarkID, &model.MarkName); err != nil {
			log.Error("failed to scan model row", slog.String("error", err.Error()))
			return nil, err
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return models, nil
}

// GetMarkByID implements store.CatalogStore.GetMarkByID
func (s *PostgresCatalogStore) GetMarkByID(ctx context.Context, id uuid.UUID) (*domain.VehicleMark, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var mark domain.VehicleMark
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM vehicle_marks WHERE id = $1`, id).
		Scan(&mark.ID, &mark.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMarkNotFound
		}
		log.Error("failed to get mark by ID",
			slog.String("error", err.Error()),
			slog.String("mark_id", id.String()))
		return nil, err
	}

	return &mark, nil
}

// GetModelByID implements store.CatalogStore.GetModelByID
func (s *PostgresCatalogStore) GetModelByID(ctx context.Context, id uuid.UUID) (*domain.VehicleModel, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT mo.id, mo.name, mo.mark_id, m.name
		FROM vehicle_models mo
		JOIN vehicle_marks m ON m.id = mo.mark_id
		WHERE mo.id = $1
	`

	var model domain.VehicleModel
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.MarkID, &model.MarkName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrModelNotFound
		}
		log.Error("failed to get model by ID",
			slog.String("error", err.Error()),
			slog.String("model_id", id.String()))
		return nil, err
	}

	return &model, nil
}

// findIDsByName runs a case-insensitive substring match against the given
// catalog table and returns the matching IDs.
func (s *PostgresCatalogStore) findIDsByName(ctx context.Context, table, term string) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM `+table+` WHERE name ILIKE $1`, "%"+term+"%")
	if err != nil {
		log.Error("failed to search catalog names",
			slog.String("error", err.Error()),
			slog.String("table", table))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// FindMarkIDsByName implements store.CatalogStore.FindMarkIDsByName
func (s *PostgresCatalogStore) FindMarkIDsByName(ctx context.Context, term string) ([]uuid.UUID, error) {
	return s.findIDsByName(ctx, "vehicle_marks", term)
}

// FindModelIDsByName implements store.CatalogStore.FindModelIDsByName
func (s *PostgresCatalogStore) FindModelIDsByName(ctx context.Context, term string) ([]uuid.UUID, error) {
	return s.findIDsByName(ctx, "vehicle_models", term)
}
