package models

import "encoding/json"

// Order statuses reported by the backend. The client never transitions an
// order itself; it only observes these via refetch.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// OrderItem is a single purchasable line item (course or ebook)
type OrderItem struct {
	ID         string  `json:"id"`
	ItemType   string  `json:"itemType"` // COURSE or EBOOK
	ItemID     string  `json:"itemId"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Payment is the payment sub-record of an order. All status transitions
// happen server-side; the client only submits a slip image.
type Payment struct {
	Status     string `json:"status"` // PENDING, PENDING_VERIFICATION, COMPLETED, REJECTED
	Method     string `json:"method"`
	Reference  string `json:"reference"`
	SlipURL    string `json:"slipUrl"`
	VerifiedAt string `json:"verifiedAt"`
	VerifiedBy string `json:"verifiedBy"`
}

// ShippingAddress is the normalized address shape. The backend serves two
// record shapes (a nested address object and an older flat layout); both are
// resolved here at the unmarshal boundary so handlers never see the split.
type ShippingAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

type rawShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Postal   string `json:"postalCode"`

	// Legacy flat shape
	CustomerName string `json:"customerName"`
	Address      string `json:"address"`
	District     string `json:"district"`
	Zip          string `json:"zip"`
}

// UnmarshalJSON accepts both server shapes and keeps whichever fields are set,
// preferring the current nested-field names over the legacy ones.
func (s *ShippingAddress) UnmarshalJSON(data []byte) error {
	var raw rawShippingAddress
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Name = raw.Name
	if s.Name == "" {
		s.Name = raw.CustomerName
	}
	s.Phone = raw.Phone
	s.Line1 = raw.Line1
	if s.Line1 == "" {
		s.Line1 = raw.Address
	}
	s.Line2 = raw.Line2
	s.City = raw.City
	if s.City == "" {
		s.City = raw.District
	}
	s.Province = raw.Province
	s.PostalCode = raw.Postal
	if s.PostalCode == "" {
		s.PostalCode = raw.Zip
	}
	return nil
}

// Order mirrors the backend order record. Total is authoritative; the other
// monetary fields are display-only projections and are never recomputed here.
type Order struct {
	ID             string           `json:"id"`
	Status         string           `json:"status"`
	Subtotal       float64          `json:"subtotal"`
	ShippingFee    float64          `json:"shippingFee"`
	Tax            float64          `json:"tax"`
	Discount       float64          `json:"discount"`
	CouponDiscount float64          `json:"couponDiscount"`
	Total          float64          `json:"total"`
	Payment        *Payment         `json:"payment"`
	Shipping       *ShippingAddress `json:"shippingAddress"`
	Items          []OrderItem      `json:"items"`
	CreatedAt      string           `json:"createdAt"`
}

// CourseItems returns the course line items of the order
func (o *Order) CourseItems() []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if item.ItemType == "COURSE" {
			items = append(items, item)
		}
	}
	return items
}

// PaymentStatus returns the payment sub-record status, or empty when the
// order carries no payment yet
func (o *Order) PaymentStatus() string {
	if o.Payment == nil {
		return ""
	}
	return o.Payment.Status
}
