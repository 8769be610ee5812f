package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.ReceivingRepository = (*ReceivingRepo)(nil)

// ReceivingRepo recepciones, líneas e inspecciones sobre PostgreSQL.
type ReceivingRepo struct {
	q Querier
}

// NewReceivingRepository construye el adaptador.
func NewReceivingRepository(q Querier) *ReceivingRepo {
	return &ReceivingRepo{q: q}
}

// NextNumber reserva el siguiente RCV-YYYYMMDD-NNN del día. El advisory lock vive hasta el fin de la tx,
// así dos recepciones concurrentes del mismo día no obtienen el mismo número.
func (r *ReceivingRepo) NextNumber(ctx context.Context, day time.Time) (string, error) {
	prefix := "RCV-" + day.Format("20060102")
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix); err != nil {
		return "", fmt.Errorf("receiving number lock: %w", err)
	}
	var last int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(split_part(number, '-', 3) AS INTEGER)), 0)
		FROM receivings WHERE number LIKE $1`, prefix+"-%").Scan(&last)
	if err != nil {
		return "", fmt.Errorf("receiving number: %w", err)
	}
	return fmt.Sprintf("%s-%03d", prefix, last+1), nil
}

// Create inserta la cabecera (sin líneas).
func (r *ReceivingRepo) Create(ctx context.Context, rec *entity.Receiving) error {
	query := `
		INSERT INTO receivings (id, number, received_at, supplier_name, receiver_name, invoice_number, invoice_file_url, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.Number, rec.ReceivedAt, rec.SupplierName, rec.ReceiverName,
		rec.InvoiceNumber, rec.InvoiceFileURL, rec.CreatedByID, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receiving: %w", err)
	}
	return nil
}

// CreateItem inserta una línea y, si la tiene, su inspección.
func (r *ReceivingRepo) CreateItem(ctx context.Context, item *entity.ReceivingItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receiving_items (id, receiving_id, material_id, quantity_received, quantity_accepted, unit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.ReceivingID, item.MaterialID, item.QuantityReceived, item.QuantityAccepted, item.Unit, item.Status,
	)
	if err != nil {
		return fmt.Errorf("insert receiving item: %w", err)
	}
	ins := item.Inspection
	if ins == nil {
		return nil
	}
	kind, details, err := encodeInspection(ins.Details)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO inspections (id, receiving_item_id, kind, details, expiry_date, photo_material_url, photo_form_url, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ins.ID, item.ID, kind, details, ins.ExpiryDate, ins.PhotoMaterialURL, ins.PhotoFormURL, ins.Status, ins.Notes, ins.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inspection: %w", err)
	}
	return nil
}

// GetByID cabecera con líneas e inspecciones. nil si no existe.
func (r *ReceivingRepo) GetByID(ctx context.Context, id string) (*entity.Receiving, error) {
	rec, err := scanReceiving(r.q.QueryRow(ctx, `
		SELECT id, number, received_at, supplier_name, receiver_name, invoice_number, invoice_file_url, created_by, created_at
		FROM receivings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receiving: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT ri.id, ri.receiving_id, ri.material_id, ri.quantity_received, ri.quantity_accepted, ri.unit, ri.status,
			ins.id, ins.kind, ins.details, ins.expiry_date, ins.photo_material_url, ins.photo_form_url, ins.status, ins.notes, ins.created_at
		FROM receiving_items ri
		LEFT JOIN inspections ins ON ins.receiving_item_id = ri.id
		WHERE ri.receiving_id = $1
		ORDER BY ri.id`, id)
	if err != nil {
		return nil, fmt.Errorf("list receiving items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it       entity.ReceivingItem
			insID    *string
			kind     *string
			details  []byte
			expiry   *time.Time
			photoMat *string
			photoFrm *string
			status   *string
			notes    *string
			created  *time.Time
		)
		if err := rows.Scan(
			&it.ID, &it.ReceivingID, &it.MaterialID, &it.QuantityReceived, &it.QuantityAccepted, &it.Unit, &it.Status,
			&insID, &kind, &details, &expiry, &photoMat, &photoFrm, &status, &notes, &created,
		); err != nil {
			return nil, fmt.Errorf("scan receiving item: %w", err)
		}
		if insID != nil {
			d, err := decodeInspection(*kind, details)
			if err != nil {
				return nil, err
			}
			it.Inspection = &entity.Inspection{
				ID:               *insID,
				ReceivingItemID:  it.ID,
				Details:          d,
				ExpiryDate:       expiry,
				PhotoMaterialURL: photoMat,
				PhotoFormURL:     photoFrm,
				Status:           emptyIfNull(status),
				Notes:            notes,
			}
			if created != nil {
				it.Inspection.CreatedAt = *created
			}
		}
		rec.Items = append(rec.Items, &it)
	}
	return rec, rows.Err()
}

// List cabeceras, más recientes primero.
func (r *ReceivingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Receiving, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, number, received_at, supplier_name, receiver_name, invoice_number, invoice_file_url, created_by, created_at
		FROM receivings ORDER BY number DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receivings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receiving
	for rows.Next() {
		rec, err := scanReceiving(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receiving: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanReceiving(row pgx.Row) (*entity.Receiving, error) {
	var rec entity.Receiving
	if err := row.Scan(
		&rec.ID, &rec.Number, &rec.ReceivedAt, &rec.SupplierName, &rec.ReceiverName,
		&rec.InvoiceNumber, &rec.InvoiceFileURL, &rec.CreatedByID, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

// encodeInspection serializa la variante a (kind, JSONB).
func encodeInspection(d entity.InspectionDetails) (string, []byte, error) {
	if d == nil {
		return "", nil, errors.New("inspection: sin detalle")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return "", nil, fmt.Errorf("inspection details: %w", err)
	}
	return d.Kind(), raw, nil
}

func decodeInspection(kind string, raw []byte) (entity.InspectionDetails, error) {
	switch kind {
	case entity.InspectionKindWet:
		var w entity.WetInspection
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &w); err != nil {
				return nil, fmt.Errorf("inspection details: %w", err)
			}
		}
		return w, nil
	case entity.InspectionKindDry:
		var d entity.DryInspection
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, fmt.Errorf("inspection details: %w", err)
			}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("inspection: tipo desconocido %q", kind)
	}
}
