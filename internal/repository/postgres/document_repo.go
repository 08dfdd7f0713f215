package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/port"
	"gstbill/internal/repository"
)

// documentRow is the documents table layout. The searchable identity columns
// are real columns; everything printed on the document lives in payload.
type documentRow struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	DocType   string          `db:"doc_type"`
	DocNumber string          `db:"doc_number"`
	IssueDate string          `db:"issue_date"`
	Payload   json.RawMessage `db:"payload"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

type documentPayload struct {
	Company               domain.CompanyInfo     `json:"company"`
	Client                domain.ClientInfo      `json:"client"`
	Shipping              domain.ClientInfo      `json:"shipping"`
	ShippingSameAsBilling bool                   `json:"shipping_same_as_billing"`
	Details               domain.DocumentDetails `json:"details"`
	Bank                  domain.BankInfo        `json:"bank"`
	Items                 []gst.LineItem         `json:"items"`
	Totals                gst.Totals             `json:"totals"`
	TermsAndConditions    string                 `json:"terms_and_conditions"`
	UPIID                 string                 `json:"upi_id"`
	IsSimpleMode          bool                   `json:"is_simple_mode"`
	GSTMode               gst.Mode               `json:"gst_mode"`
}

func toDocumentRow(doc *domain.Document) (*documentRow, error) {
	payload, err := json.Marshal(documentPayload{
		Company:               doc.Company,
		Client:                doc.Client,
		Shipping:              doc.Shipping,
		ShippingSameAsBilling: doc.ShippingSameAsBilling,
		Details:               doc.Details,
		Bank:                  doc.Bank,
		Items:                 doc.Items,
		Totals:                doc.Totals,
		TermsAndConditions:    doc.TermsAndConditions,
		UPIID:                 doc.UPIID,
		IsSimpleMode:          doc.IsSimpleMode,
		GSTMode:               doc.GSTMode,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding document payload: %w", err)
	}
	return &documentRow{
		ID:        doc.ID,
		UserID:    doc.UserID,
		DocType:   string(doc.DocType),
		DocNumber: doc.Details.Number,
		IssueDate: doc.Details.IssueDate,
		Payload:   payload,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (row *documentRow) toDomain() (*domain.Document, error) {
	var p documentPayload
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &p); err != nil {
			return nil, fmt.Errorf("decoding document payload %s: %w", row.ID, err)
		}
	}
	doc := &domain.Document{
		ID:                    row.ID,
		UserID:                row.UserID,
		DocType:               domain.DocumentType(row.DocType),
		Company:               p.Company,
		Client:                p.Client,
		Shipping:              p.Shipping,
		ShippingSameAsBilling: p.ShippingSameAsBilling,
		Details:               p.Details,
		Bank:                  p.Bank,
		Items:                 p.Items,
		Totals:                p.Totals,
		TermsAndConditions:    p.TermsAndConditions,
		UPIID:                 p.UPIID,
		IsSimpleMode:          p.IsSimpleMode,
		GSTMode:               p.GSTMode,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
	doc.Details.Number = row.DocNumber
	repository.SanitizeDocument(doc)
	return doc, nil
}

func rowsToDocuments(rows []documentRow) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(rows))
	for i := range rows {
		doc, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

const insertDocumentQuery = `INSERT INTO documents (
		id, user_id, doc_type, doc_number, issue_date, payload, created_at, updated_at
	) VALUES (
		:id, :user_id, :doc_type, :doc_number, :issue_date, :payload, :created_at, :updated_at
	)`

func prepareForInsert(doc *domain.Document) (*documentRow, error) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	repository.SanitizeDocument(doc)
	return toDocumentRow(doc)
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	row, err := prepareForInsert(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	if _, err := r.db.NamedExecContext(ctx, insertDocumentQuery, row); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) CreateBatch(ctx context.Context, docs []domain.Document) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range docs {
		row, err := prepareForInsert(&docs[i])
		if err != nil {
			return fmt.Errorf("documentRepo.CreateBatch: %w", err)
		}
		if _, err := tx.NamedExecContext(ctx, insertDocumentQuery, row); err != nil {
			return fmt.Errorf("documentRepo.CreateBatch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error) {
	var row documentRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM documents WHERE id = $1 AND user_id = $2", docID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *documentRepo) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	var rows []documentRow
	err = r.db.SelectContext(ctx, &rows,
		"SELECT * FROM documents WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	docs, err := rowsToDocuments(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	var rows []documentRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM documents WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListAll: %w", err)
	}
	return rowsToDocuments(rows)
}

func (r *documentRepo) ListByType(ctx context.Context, userID uuid.UUID, docType domain.DocumentType) ([]domain.Document, error) {
	var rows []documentRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM documents WHERE user_id = $1 AND doc_type = $2 ORDER BY created_at DESC",
		userID, string(docType))
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByType: %w", err)
	}
	return rowsToDocuments(rows)
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	repository.SanitizeDocument(doc)
	row, err := toDocumentRow(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}

	result, err := r.db.NamedExecContext(ctx, `UPDATE documents SET
		doc_type = :doc_type, doc_number = :doc_number, issue_date = :issue_date,
		payload = :payload, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, row)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, userID, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND user_id = $2", docID, userID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE user_id = $1", userID)
	if err != nil {
		return 0, fmt.Errorf("documentRepo.DeleteAll: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *documentRepo) ReplaceAll(ctx context.Context, userID uuid.UUID, docs []domain.Document) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("documentRepo.ReplaceAll begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE user_id = $1", userID)
	if err != nil {
		return 0, fmt.Errorf("documentRepo.ReplaceAll delete: %w", err)
	}
	removed, _ := result.RowsAffected()

	for i := range docs {
		docs[i].UserID = userID
		row, err := prepareForInsert(&docs[i])
		if err != nil {
			return 0, fmt.Errorf("documentRepo.ReplaceAll: %w", err)
		}
		if _, err := tx.NamedExecContext(ctx, insertDocumentQuery, row); err != nil {
			return 0, fmt.Errorf("documentRepo.ReplaceAll insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("documentRepo.ReplaceAll commit: %w", err)
	}
	return int(removed), nil
}
