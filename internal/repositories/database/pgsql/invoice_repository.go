package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_expense_tracker/internal/apperrors"
	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/site_expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/site_expense_tracker/internal/models"
	"github.com/SscSPs/site_expense_tracker/internal/utils/mapping"
	"github.com/SscSPs/site_expense_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

var invoicesTable = siteListing{
	table: "invoices",
	columns: "invoice_id, site_id, invoice_date, party_name, material, quantity, rate, gst_percent, " +
		"gross_amount, net_amount, bank_details, payment_status, approved_by, " + auditColumns,
	dateCol: "invoice_date",
	idCol:   "invoice_id",
}

func invoiceCursor(m models.Invoice) pagination.Cursor {
	return pagination.Cursor{RecordDate: m.Date, CreatedAt: m.CreatedAt, RecordID: m.InvoiceID}
}

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m, err := mapping.ToModelInvoice(invoice)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode bank details of invoice "+invoice.InvoiceID, err)
	}
	query := `
		INSERT INTO invoices (invoice_id, site_id, invoice_date, party_name, material, quantity, rate, gst_percent,
		                      gross_amount, net_amount, bank_details, payment_status, approved_by,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.InvoiceID, m.SiteID, m.Date, m.PartyName, m.Material, m.Quantity, m.Rate, m.GSTPercent,
		m.GrossAmount, m.NetAmount, m.BankDetails, m.PaymentStatus, m.ApprovedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "invoice "+m.InvoiceID)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	m, err := findOne[models.Invoice](ctx, r.Pool, invoicesTable, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice, _ := mapping.ToDomainInvoice(*m)
	return &invoice, nil
}

// ListInvoicesBySite retrieves one page of a site's invoices.
func (r *PgxInvoiceRepository) ListInvoicesBySite(ctx context.Context, siteID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	ms, next, err := listBySite(ctx, r.Pool, invoicesTable, siteID, limit, nextToken, invoiceCursor)
	if err != nil {
		return nil, nil, err
	}
	invoices, _ := mapping.ToDomainInvoiceSlice(ms)
	return invoices, next, nil
}

// UpdateInvoicePaymentStatus records a payment.
func (r *PgxInvoiceRepository) UpdateInvoicePaymentStatus(ctx context.Context, invoiceID string, from, to domain.PaymentStatus, userID string, at time.Time) error {
	if from != domain.PaymentPending {
		return fmt.Errorf("%w: cannot move from %s", apperrors.ErrInvalidTransition, from)
	}
	return transitionStatus(ctx, r.Pool, "invoices", "invoice_id", "payment_status", invoiceID, settledPayment, string(to), userID, at)
}
