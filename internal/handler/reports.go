package handler

import (
	"net/http"
	"time"

	"carhub/internal/apierror"
	"carhub/internal/currency"
	"carhub/internal/dto"
	"carhub/internal/infra"
	"carhub/internal/model"
	"carhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportsHandler renders PDF documents and streams them back to the caller.
type ReportsHandler struct {
	sales       service.SaleService
	inventory   service.InventoryService
	settings    service.SettingsService
	storagePath string
}

func NewReportsHandler(sales service.SaleService, inventory service.InventoryService, settings service.SettingsService, storagePath string) *ReportsHandler {
	return &ReportsHandler{sales: sales, inventory: inventory, settings: settings, storagePath: storagePath}
}

func (h *ReportsHandler) branding(c *gin.Context) (string, *currency.Formatter) {
	ctx := c.Request.Context()
	name := h.settings.GetValue(ctx, "company_name", "CarHub")
	fmtr := currency.NewFormatter(h.settings.GetValue(ctx, "currency", "MGA"))
	return name, fmtr
}

// Invoice renders the invoice PDF for one sale.
func (h *ReportsHandler) Invoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	sale, err := h.sales.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	companyName, fmtr := h.branding(c)
	path, err := infra.GenerateInvoicePDF(sale, companyName, fmtr, h.storagePath)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "invoice_"+sale.InvoiceNumber+".pdf")
}

// Inventory renders the current inventory as a PDF table. ?status filters to
// one lifecycle state.
func (h *ReportsHandler) Inventory(c *gin.Context) {
	var (
		vehicles []model.Vehicle
		err      error
	)
	if status := c.Query("status"); status != "" {
		vehicles, err = h.inventory.ListByStatus(c.Request.Context(), model.VehicleStatus(status))
	} else {
		vehicles, err = h.inventory.List(c.Request.Context())
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	companyName, fmtr := h.branding(c)
	path, err := infra.GenerateInventoryReportPDF(vehicles, companyName, fmtr, h.storagePath)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "inventory_report.pdf")
}

// Sales renders the sales of a date window as a PDF table.
func (h *ReportsHandler) Sales(c *gin.Context) {
	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid date range"))
		return
	}
	sales, err := h.sales.List(c.Request.Context(), dto.SaleFilter{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	companyName, fmtr := h.branding(c)
	path, err := infra.GenerateSalesReportPDF(sales, from, to, companyName, fmtr, h.storagePath)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "sales_report_"+time.Now().Format("20060102")+".pdf")
}
