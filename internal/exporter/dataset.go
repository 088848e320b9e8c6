package exporter

import (
	"fmt"

	"salespulse/pkg/contracts/domain"
)

var lineItemHeaders = []string{
	"So_No", "Customer_Name", "Site_Address", "PO_Date", "Scheduled_Date",
	"Invoice_Date", "Product_Name", "Ordered_Qty", "Supplied_Qty",
	"Lead_Time_Days", "Schedule_Delay_Days", "Delivery_Status",
	"Order_Status", "Order_Month", "Order_Quarter", "Order_Year",
	"Dormancy_Days", "Avg_Order_Value", "Allocated_Value",
}

var orderSummaryHeaders = []string{
	"So_No", "Customer_Name", "Site_Address", "PO_Date", "Scheduled_Date",
	"Invoice_Date", "PO_Value", "Supplied_Value", "Line_Item_Count",
}

// ExportLineItems writes the expanded line-item table
func (w *CSVWriter) ExportLineItems(items []domain.LineItemRow) error {
	records := make([][]string, 0, len(items))
	for _, li := range items {
		records = append(records, []string{
			li.SONumber,
			li.CustomerName,
			li.SiteAddress,
			formatDate(li.PODate),
			formatOptDate(li.ScheduledDate),
			formatOptDate(li.InvoiceDate),
			li.ProductName,
			formatFloat(li.OrderedQty),
			formatFloat(li.SuppliedQty),
			formatOptInt(li.LeadTimeDays),
			formatOptInt(li.ScheduleDelayDays),
			string(li.DeliveryStatus),
			string(li.OrderStatus),
			li.OrderMonth,
			li.OrderQuarter,
			formatInt(li.OrderYear),
			formatOptInt(li.DormancyDays),
			formatFloat(li.AvgOrderValue),
			formatFloat(li.AllocatedValue),
		})
	}
	return w.WriteSimpleCSV(w.paths.LineItemsCSV, lineItemHeaders, records)
}

// ExportOrderSummary writes the deduplicated order table
func (w *CSVWriter) ExportOrderSummary(orders []domain.OrderSummaryRow) error {
	records := make([][]string, 0, len(orders))
	for _, o := range orders {
		records = append(records, []string{
			o.SONumber,
			o.CustomerName,
			o.SiteAddress,
			formatDate(o.PODate),
			formatOptDate(o.ScheduledDate),
			formatOptDate(o.InvoiceDate),
			formatOptFloat(o.POValue),
			formatOptFloat(o.SuppliedValue),
			formatInt(o.LineItemCount),
		})
	}
	return w.WriteSimpleCSV(w.paths.OrderSummaryCSV, orderSummaryHeaders, records)
}

// ExportKPIReport writes the headline KPI scalars for a run
func (w *CSVWriter) ExportKPIReport(runID string, kpis domain.KPISet) error {
	records := [][]string{
		{"run_id", runID},
		{"total_sales", formatFloat(kpis.TotalSales)},
		{"pending_value", formatFloat(kpis.PendingValue)},
		{"total_orders", formatInt(kpis.TotalOrders)},
		{"avg_lead_time_days", formatFloat(kpis.AvgLeadTimeDays)},
		{"on_time_percent", formatFloat(kpis.OnTimePercent)},
		{"top_customer_share_percent", formatFloat(kpis.TopCustomerSharePercent)},
	}
	return w.WriteSimpleCSV(w.paths.KPIReportCSV, []string{"metric", "value"}, records)
}

// WriteDataset writes every export artifact for one pipeline run
func (w *CSVWriter) WriteDataset(ds *domain.Dataset, kpis domain.KPISet) error {
	if err := w.ExportLineItems(ds.LineItems); err != nil {
		return fmt.Errorf("export line items: %w", err)
	}
	if err := w.ExportOrderSummary(ds.Orders); err != nil {
		return fmt.Errorf("export order summary: %w", err)
	}
	if err := w.ExportKPIReport(ds.RunID, kpis); err != nil {
		return fmt.Errorf("export kpi report: %w", err)
	}
	return nil
}
