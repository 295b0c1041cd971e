package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleet-api/internal/domain"
	"github.com/fleetdesk/fleet-api/internal/platform/logger"
	"github.com/fleetdesk/fleet-api/internal/store"
)

// vehicleIDUniqueConstraint is the unique constraint backing the
// human-readable vehicle identifier. A violation here means the identifier
// allocator raced another create and the caller should retry with a fresh
// identifier.
const vehicleIDUniqueConstraint = "vehicles_vehicle_id_key"

// PostgresVehicleStore implements the store.VehicleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVehicleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVehicleStore creates a new PostgreSQL implementation of the
// VehicleStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresVehicleStore(db store.DBTX, logger *slog.Logger) *PostgresVehicleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVehicleStore{
		db:     db,
		logger: logger.With(slog.String("component", "vehicle_store")),
	}
}

// Ensure PostgresVehicleStore implements store.VehicleStore interface
var _ store.VehicleStore = (*PostgresVehicleStore)(nil)

// vehicleSelectColumns lists the vehicle row columns plus the joined display
// fields, in scan order.
const vehicleSelectColumns = `
	v.id, v.vehicle_id, v.mark_id, v.model_id, v.year, v.status,
	v.created_by, v.updated_by, v.created_at, v.updated_at,
	m.name, mo.name, cu.email, uu.email`

// vehicleJoins resolves mark/model names and creator/modifier emails.
const vehicleJoins = `
	FROM vehicles v
	JOIN vehicle_marks m ON m.id = v.mark_id
	JOIN vehicle_models mo ON mo.id = v.model_id
	JOIN users cu ON cu.id = v.created_by
	JOIN users uu ON uu.id = v.updated_by`

// sortColumns whitelists the ORDER BY targets. Anything else falls back to
// created_at; the service validates sort fields before they reach the store.
var sortColumns = map[store.VehicleSortField]string{
	store.SortByVehicleID: "v.vehicle_id",
	store.SortByYear:      "v.year",
	store.SortByStatus:    "v.status",
	store.SortByCreatedAt: "v.created_at",
	store.SortByUpdatedAt: "v.updated_at",
}

// buildVehicleWhere renders the filter as a WHERE clause body with positional
// arguments. Returns "" and no args for an empty filter. The search legs
// (mark IDs, model IDs, identifier substring) are OR-ed into a single group;
// everything else is AND-ed.
func buildVehicleWhere(filter store.VehicleFilter) (string, []any) {
	var clauses []string
	var args []any

	next := func() string {
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		var legs []string

		if len(filter.MarkIDs) > 0 {
			ph := make([]string, 0, len(filter.MarkIDs))
			for _, id := range filter.MarkIDs {
				args = append(args, id)
				ph = append(ph, next())
			}
			legs = append(legs, "v.mark_id IN ("+strings.Join(ph, ", ")+")")
		}

		if len(filter.ModelIDs) > 0 {
			ph := make([]string, 0, len(filter.ModelIDs))
			for _, id := range filter.ModelIDs {
				args = append(args, id)
				ph = append(ph, next())
			}
			legs = append(legs, "v.model_id IN ("+strings.Join(ph, ", ")+")")
		}

		args = append(args, "%"+filter.Search+"%")
		legs = append(legs, "v.vehicle_id ILIKE "+next())

		clauses = append(clauses, "("+strings.Join(legs, " OR ")+")")
	}

	if filter.YearFrom != 0 {
		args = append(args, filter.YearFrom)
		clauses = append(clauses, "v.year >= "+next())
	}

	if filter.YearTo != 0 {
		args = append(args, filter.YearTo)
		clauses = append(clauses, "v.year <= "+next())
	}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, "v.status = "+next())
	}

	return strings.Join(clauses, " AND "), args
}

// Create implements store.VehicleStore.Create
// Returns store.ErrVehicleIDExists when the human-readable identifier is
// already taken, and store.ErrInvalidEntity when a referenced mark, model or
// user does not exist.
func (s *PostgresVehicleStore) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := vehicle.Validate(); err != nil {
		log.Warn("vehicle validation failed during create",
			slog.String("error", err.Error()),
			slog.String("vehicle_id", vehicle.VehicleID))
		return err
	}

	query := `
		INSERT INTO vehicles (id, vehicle_id, mark_id, model_id, year, status,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		vehicle.ID,
		vehicle.VehicleID,
		vehicle.MarkID,
		vehicle.ModelID,
		vehicle.Year,
		vehicle.Status,
		vehicle.CreatedBy,
		vehicle.UpdatedBy,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, vehicleIDUniqueConstraint) {
			log.Warn("vehicle identifier already taken",
				slog.String("vehicle_id", vehicle.VehicleID))
			return store.ErrVehicleIDExists
		}
		log.Error("failed to create vehicle",
			slog.String("error", err.Error()),
			slog.String("vehicle_id", vehicle.VehicleID))
		return MapError(err)
	}

	log.Info("vehicle created successfully",
		slog.String("vehicle_id", vehicle.VehicleID),
		slog.String("id", vehicle.ID.String()))
	return nil
}

// scanVehicle scans one joined vehicle row.
func scanVehicle(scan func(dest ...any) error) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var status string

	err := scan(
		&v.ID,
		&v.VehicleID,
		&v.MarkID,
		&v.ModelID,
		&v.Year,
		&status,
		&v.CreatedBy,
		&v.UpdatedBy,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.MarkName,
		&v.ModelName,
		&v.CreatedByEmail,
		&v.UpdatedByEmail,
	)
	if err != nil {
		return nil, err
	}

	v.Status = domain.VehicleStatus(status)
	return &v, nil
}

// GetByID implements store.VehicleStore.GetByID
func (s *PostgresVehicleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + vehicleSelectColumns + vehicleJoins + ` WHERE v.id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	vehicle, err := scanVehicle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vehicle not found", slog.String("id", id.String()))
			return nil, store.ErrVehicleNotFound
		}
		log.Error("failed to get vehicle by ID",
			slog.String("error", err.Error()),
			slog.String("id", id.String()))
		return nil, err
	}

	return vehicle, nil
}

// Update implements store.VehicleStore.Update
// Only the mutable fields change; vehicle_id and created_by are preserved.
func (s *PostgresVehicleStore) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE vehicles
		SET mark_id = $1, model_id = $2, year = $3, status = $4,
			updated_by = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		vehicle.MarkID,
		vehicle.ModelID,
		vehicle.Year,
		vehicle.Status,
		vehicle.UpdatedBy,
		time.Now().UTC(),
		vehicle.ID,
	)

	if err != nil {
		log.Error("failed to update vehicle",
			slog.String("error", err.Error()),
			slog.String("id", vehicle.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrVehicleNotFound)
}

// UpdateStatus implements store.VehicleStore.UpdateStatus
func (s *PostgresVehicleStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.VehicleStatus,
	updatedBy uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE vehicles
		SET status = $1, updated_by = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, status, updatedBy, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update vehicle status",
			slog.String("error", err.Error()),
			slog.String("id", id.String()),
			slog.String("status", string(status)))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrVehicleNotFound)
}

// Delete implements store.VehicleStore.Delete
func (s *PostgresVehicleStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete vehicle",
			slog.String("error", err.Error()),
			slog.String("id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrVehicleNotFound); err != nil {
		return err
	}

	log.Info("vehicle deleted", slog.String("id", id.String()))
	return nil
}

// List implements store.VehicleStore.List
func (s *PostgresVehicleStore) List(
	ctx context.Context,
	filter store.VehicleFilter,
	sortBy store.VehicleSortField,
	descending bool,
	offset, limit int,
) ([]*domain.Vehicle, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildVehicleWhere(filter)

	column, ok := sortColumns[sortBy]
	if !ok {
		column = "v.created_at"
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	query := `SELECT` + vehicleSelectColumns + vehicleJoins
	if where != "" {
		query += " WHERE " + where
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		column, direction, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list vehicles", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows.Scan)
		if err != nil {
			log.Error("failed to scan vehicle row", slog.String("error", err.Error()))
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if vehicles == nil {
		vehicles = []*domain.Vehicle{}
	}

	log.Debug("listed vehicles",
		slog.Int("count", len(vehicles)),
		slog.Int("offset", offset),
		slog.Int("limit", limit))
	return vehicles, nil
}

// Count implements store.VehicleStore.Count
// Uses the same predicate as List, unaffected by sorting and pagination.
func (s *PostgresVehicleStore) Count(ctx context.Context, filter store.VehicleFilter) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildVehicleWhere(filter)

	query := `SELECT COUNT(*) FROM vehicles v`
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count vehicles", slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// LastVehicleID implements store.VehicleStore.LastVehicleID
func (s *PostgresVehicleStore) LastVehicleID(ctx context.Context) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT vehicle_id FROM vehicles ORDER BY vehicle_id DESC LIMIT 1`

	var vehicleID string
	err := s.db.QueryRowContext(ctx, query).Scan(&vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		log.Error("failed to get last vehicle identifier", slog.String("error", err.Error()))
		return "", err
	}

	return vehicleID, nil
}

// Metrics implements store.VehicleStore.Metrics
func (s *PostgresVehicleStore) Metrics(ctx context.Context) (store.VehicleMetrics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $1)
		FROM vehicles
	`

	var metrics store.VehicleMetrics
	err := s.db.QueryRowContext(ctx, query, domain.VehicleStatusAvailable).
		Scan(&metrics.TotalVehicles, &metrics.ActiveVehicles)
	if err != nil {
		log.Error("failed to compute vehicle metrics", slog.String("error", err.Error()))
		return store.VehicleMetrics{}, err
	}

	return metrics, nil
}
