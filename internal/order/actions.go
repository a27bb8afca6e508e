package order

// InvoiceHelperCOD is shown when a COD order's invoice is not yet available.
const InvoiceHelperCOD = "available after delivery"

// ActionAvailability says which order actions a surface may render or accept.
// It is a pure function of status and payment method so the API, the order
// page, and any admin console agree exactly.
type ActionAvailability struct {
	ShowCancel        bool   `json:"show_cancel"`
	ShowReturn        bool   `json:"show_return"`
	ShowTrack         bool   `json:"show_track"`
	InvoiceAvailable  bool   `json:"invoice_available"`
	InvoiceHelperText string `json:"invoice_helper_text,omitempty"`
}

// ActionsFor evaluates the availability rules for a status and payment
// method. COD invoices exist only after delivery because the amount is
// collected at the door; prepaid invoices appear once the parcel ships.
func ActionsFor(status Status, method PaymentMethod) ActionAvailability {
	a := ActionAvailability{
		ShowCancel: status == StatusPlaced || status == StatusConfirmed,
		ShowReturn: status == StatusDelivered,
		ShowTrack:  status == StatusShipped || status == StatusOutForDelivery,
	}
	if method.IsCOD() {
		a.InvoiceAvailable = status == StatusDelivered
	} else {
		a.InvoiceAvailable = status == StatusShipped || status == StatusDelivered
	}
	if !a.InvoiceAvailable && method.IsCOD() && status != StatusCancelled {
		a.InvoiceHelperText = InvoiceHelperCOD
	}
	return a
}

// AmountLabel returns the label a surface shows next to the grand total.
// The number itself never changes; COD merely renames it.
func AmountLabel(method PaymentMethod) string {
	if method.IsCOD() {
		return "payable on delivery"
	}
	return "total"
}
