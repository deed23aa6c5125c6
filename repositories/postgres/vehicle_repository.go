package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carromarket/backend/models"
	"github.com/carromarket/backend/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const vehicleColumns = `id, posted_by_id, vehicle_type, title, make, model, variant, year,
		price, mileage, fuel_type, transmission, body_type, color, engine_size, doors,
		registration_date, tax_due_date, insurance_expiry, location, seller_type,
		import_status, condition, ownership_history, description, vin, created_at, updated_at`

// VehicleRepository implements the repositories.VehicleRepository interface
type VehicleRepository struct {
	db     *DB
	tx     repositories.TransactionManager
	logger *zap.Logger
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *DB, tx repositories.TransactionManager, logger *zap.Logger) repositories.VehicleRepository {
	return &VehicleRepository{
		db:     db,
		tx:     tx,
		logger: logger,
	}
}

// Create inserts a vehicle and its image rows in a single transaction
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, r.db)

		query := `
			INSERT INTO vehicles (` + vehicleColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
		`
		_, err := executor.ExecContext(ctx, query,
			vehicle.ID,
			vehicle.PostedByID,
			vehicle.Type,
			vehicle.Title,
			vehicle.Make,
			vehicle.Model,
			nullable(vehicle.Variant),
			vehicle.Year,
			vehicle.Price,
			vehicle.Mileage,
			vehicle.FuelType,
			vehicle.Transmission,
			vehicle.BodyType,
			vehicle.Color,
			vehicle.EngineSize,
			vehicle.Doors,
			vehicle.RegistrationDate,
			vehicle.TaxDueDate,
			vehicle.InsuranceExpiry,
			vehicle.Location,
			vehicle.SellerType,
			vehicle.ImportStatus,
			vehicle.Condition,
			vehicle.OwnershipHistory,
			vehicle.Description,
			nullable(vehicle.VIN),
			vehicle.CreatedAt,
			vehicle.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create vehicle: %w", translateError(err))
		}

		for _, image := range vehicle.Images {
			_, err := executor.ExecContext(ctx,
				`INSERT INTO vehicle_images (id, vehicle_id, url) VALUES ($1, $2, $3)`,
				image.ID, image.VehicleID, image.URL,
			)
			if err != nil {
				return fmt.Errorf("failed to create vehicle image: %w", err)
			}
		}

		r.logger.Debug("vehicle created", zap.String("id", vehicle.ID.String()))
		return nil
	})
}

// List returns a page of vehicles ordered newest first, images eager-loaded
func (r *VehicleRepository) List(ctx context.Context, offset, limit int) ([]*models.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	ids := make([]uuid.UUID, 0)
	byID := make(map[uuid.UUID]*models.Vehicle)

	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
		ids = append(ids, vehicle.ID)
		byID[vehicle.ID] = vehicle
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", err)
	}

	if len(ids) == 0 {
		return vehicles, nil
	}

	if err := r.loadImages(ctx, ids, byID); err != nil {
		return nil, err
	}

	return vehicles, nil
}

// GetByID retrieves a vehicle with its images
func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get vehicle: %w", err)
		}
		return nil, repositories.ErrNotFound
	}

	vehicle, err := scanVehicle(rows)
	if err != nil {
		return nil, err
	}

	byID := map[uuid.UUID]*models.Vehicle{vehicle.ID: vehicle}
	if err := r.loadImages(ctx, []uuid.UUID{vehicle.ID}, byID); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Update replaces the mutable listing fields
func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET title = $2,
		    price = $3,
		    mileage = $4,
		    location = $5,
		    condition = $6,
		    description = $7,
		    updated_at = $8
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Title,
		vehicle.Price,
		vehicle.Mileage,
		vehicle.Location,
		vehicle.Condition,
		vehicle.Description,
		vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("vehicle updated", zap.String("id", vehicle.ID.String()))
	return nil
}

// Delete removes a vehicle; images go with it via ON DELETE CASCADE
func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("vehicle deleted", zap.String("id", id.String()))
	return nil
}

// loadImages attaches image rows to the vehicles in byID
func (r *VehicleRepository) loadImages(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*models.Vehicle) error {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx,
		`SELECT id, vehicle_id, url FROM vehicle_images WHERE vehicle_id = ANY($1::uuid[])`,
		uuidArray(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to query vehicle images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var image models.VehicleImage
		if err := rows.Scan(&image.ID, &image.VehicleID, &image.URL); err != nil {
			return fmt.Errorf("failed to scan vehicle image: %w", err)
		}
		if vehicle, ok := byID[image.VehicleID]; ok {
			vehicle.Images = append(vehicle.Images, image)
		}
	}
	return rows.Err()
}

// uuidArray renders IDs as a text array for the ::uuid[] cast
func uuidArray(ids []uuid.UUID) pq.StringArray {
	arr := make(pq.StringArray, len(ids))
	for i, id := range ids {
		arr[i] = id.String()
	}
	return arr
}

func scanVehicle(rows *sql.Rows) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	var variant, vin sql.NullString
	var registrationDate, taxDueDate, insuranceExpiry sql.NullTime

	err := rows.Scan(
		&vehicle.ID,
		&vehicle.PostedByID,
		&vehicle.Type,
		&vehicle.Title,
		&vehicle.Make,
		&vehicle.Model,
		&variant,
		&vehicle.Year,
		&vehicle.Price,
		&vehicle.Mileage,
		&vehicle.FuelType,
		&vehicle.Transmission,
		&vehicle.BodyType,
		&vehicle.Color,
		&vehicle.EngineSize,
		&vehicle.Doors,
		&registrationDate,
		&taxDueDate,
		&insuranceExpiry,
		&vehicle.Location,
		&vehicle.SellerType,
		&vehicle.ImportStatus,
		&vehicle.Condition,
		&vehicle.OwnershipHistory,
		&vehicle.Description,
		&vin,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}

	vehicle.Variant = variant.String
	vehicle.VIN = vin.String
	if registrationDate.Valid {
		vehicle.RegistrationDate = &registrationDate.Time
	}
	if taxDueDate.Valid {
		vehicle.TaxDueDate = &taxDueDate.Time
	}
	if insuranceExpiry.Valid {
		vehicle.InsuranceExpiry = &insuranceExpiry.Time
	}

	return vehicle, nil
}
