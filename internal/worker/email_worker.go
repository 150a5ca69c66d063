package worker

// email_worker.go
// Processes sale-confirmation jobs from QueueEmail: loads the sale with its
// vehicle and client, renders the invoice PDF and mails it to the buyer.

import (
	"context"
	"encoding/json"
	"fmt"

	"carhub/internal/currency"
	"carhub/internal/infra"
	"carhub/internal/repository"
	"carhub/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type EmailWorker struct {
	saleRepo    repository.SaleRepository
	settings    service.SettingsService
	mailer      *infra.Mailer
	storagePath string
}

func NewEmailWorker(saleRepo repository.SaleRepository, settings service.SettingsService, mailer *infra.Mailer, storagePath string) *EmailWorker {
	return &EmailWorker{saleRepo: saleRepo, settings: settings, mailer: mailer, storagePath: storagePath}
}

// Process handles one sale-confirmation job. A client without an email
// address is skipped, not an error.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload SaleConfirmationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("email_worker: malformed sale id")
		return
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("email_worker: sale not found")
		return
	}
	if sale.Client == nil || sale.Client.Email == nil || *sale.Client.Email == "" {
		log.Warn().Str("invoice", sale.InvoiceNumber).Msg("email_worker: client has no email — skipping")
		return
	}

	companyName := w.settings.GetValue(ctx, "company_name", "CarHub")
	fmtr := currency.NewFormatter(w.settings.GetValue(ctx, "currency", "MGA"))

	pdfPath, err := infra.GenerateInvoicePDF(sale, companyName, fmtr, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("invoice", sale.InvoiceNumber).Msg("email_worker: invoice PDF generation failed")
		pdfPath = "" // still send the confirmation without the attachment
	}

	vehicleName := "your vehicle"
	if sale.Vehicle != nil {
		vehicleName = sale.Vehicle.DisplayName()
	}
	subject := fmt.Sprintf("%s — Invoice %s", companyName, sale.InvoiceNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your purchase of %s.\n\nInvoice: %s\nTotal: %s\n\nYour invoice is attached.\n\n%s",
		sale.Client.FullName(), vehicleName, sale.InvoiceNumber, fmtr.Format(sale.TotalAmount), companyName,
	)

	if err := w.mailer.SendSaleConfirmation(*sale.Client.Email, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", *sale.Client.Email).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", *sale.Client.Email).Str("invoice", sale.InvoiceNumber).Msg("email_worker: confirmation sent")
}
