package storeController

import (
	"log"
	"mime/multipart"
	"os"

	"storefront/backend"
	"storefront/checkout"
	"storefront/config"
	"storefront/middleware"
	"storefront/models"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

// Payment steps the confirmation page renders, derived from payment status
const (
	StepUploadSlip        = "UPLOAD_SLIP"
	StepAwaitVerification = "AWAIT_VERIFICATION"
	StepDone              = "DONE"
	StepRejected          = "REJECTED"
)

// SummaryRow is one display-only line of the order summary. Total stays
// authoritative on the order itself; these rows are never used for charging.
type SummaryRow struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// GetOrderConfirmation fetches the order and returns the confirmation page
// view model. The flow is reused across refreshes of the same mount so the
// attempted-enrollment set keeps deduplicating.
func GetOrderConfirmation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	orderID := c.Locals("orderID").(string)

	flow, ok := checkout.Flows.FindByOrder(userID, orderID)
	if !ok {
		flow = checkout.NewFlow(backend.API, userID, orderID)
		checkout.Flows.Put(flow)
	}

	state, err := flow.Refresh(c.Context())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order fetched successfully!", confirmationView(flow.ID, state))
}

// UploadSlip stages the uploaded slip image, forwards it to the backend and
// refetches the order on success. Failures leave everything untouched and
// surface the backend message verbatim.
func UploadSlip(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	orderID := c.Locals("orderID").(string)
	file := c.Locals("slipFile").(*multipart.FileHeader)

	flow, ok := checkout.Flows.FindByOrder(userID, orderID)
	if !ok {
		flow = checkout.NewFlow(backend.API, userID, orderID)
		checkout.Flows.Put(flow)
	}

	// Stage to disk first so the page can show a preview while the upload
	// is verified; staged copies are swept by the cleanup scheduler.
	stagedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store slip image!", nil)
	}

	staged, err := os.Open(stagedPath)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store slip image!", nil)
	}
	defer staged.Close()

	state, err := flow.UploadSlip(c.Context(), file.Filename, staged)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), fiber.Map{
			"preview": utils.GetFileURL(stagedPath),
		})
	}

	// Success clears the staged file, mirroring the page dropping its
	// preview object URL.
	if err := os.Remove(stagedPath); err != nil {
		log.Printf("Failed to remove staged slip %s: %v", stagedPath, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slip uploaded successfully!", confirmationView(flow.ID, state))
}

// AwaitPayment runs the transient fixed-interval poll until the order turns
// paid-like or the poll window times out
func AwaitPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	orderID := c.Locals("orderID").(string)

	flow, ok := checkout.Flows.FindByOrder(userID, orderID)
	if !ok {
		flow = checkout.NewFlow(backend.API, userID, orderID)
		checkout.Flows.Put(flow)
	}

	state, err := flow.AwaitPayment(c.Context(), config.AppConfig.PaymentPollInterval, config.AppConfig.PaymentPollTimeout)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusGatewayTimeout, false, err.Error(), confirmationView(flow.ID, state))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", confirmationView(flow.ID, state))
}

// RetryEnrollment is the manual affordance for a course whose automatic
// enrollment attempt did not produce a record
func RetryEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	orderID := c.Locals("orderID").(string)
	courseID := c.Locals("courseID").(string)

	flow, ok := checkout.Flows.FindByOrder(userID, orderID)
	if !ok {
		flow = checkout.NewFlow(backend.API, userID, orderID)
		checkout.Flows.Put(flow)
	}

	state, err := flow.RetryEnrollment(c.Context(), courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), confirmationView(flow.ID, state))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment retried successfully!", confirmationView(flow.ID, state))
}

// confirmationView assembles the order confirmation page view model
func confirmationView(flowID string, state checkout.FlowState) fiber.Map {
	view := fiber.Map{
		"flowId":           flowID,
		"order":            state.Order,
		"enrollmentStates": state.EnrollmentStates,
	}
	if state.Message != "" {
		view["message"] = state.Message
	}
	if state.Order != nil {
		view["paymentStep"] = paymentStep(state.Order)
		view["summary"] = summaryRows(state.Order)
	}
	return view
}

func paymentStep(order *models.Order) string {
	status := order.PaymentStatus()
	switch {
	case checkout.IsPaidStatus(status) || checkout.IsPaidStatus(order.Status):
		return StepDone
	case status == "PENDING_VERIFICATION":
		return StepAwaitVerification
	case status == "REJECTED":
		return StepRejected
	default:
		return StepUploadSlip
	}
}

func summaryRows(order *models.Order) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Subtotal", Amount: order.Subtotal},
		{Label: "Shipping", Amount: order.ShippingFee},
		{Label: "Tax", Amount: order.Tax},
	}
	if order.Discount > 0 {
		rows = append(rows, SummaryRow{Label: "Discount", Amount: -order.Discount})
	}
	if order.CouponDiscount > 0 {
		rows = append(rows, SummaryRow{Label: "Coupon discount", Amount: -order.CouponDiscount})
	}
	rows = append(rows, SummaryRow{Label: "Total", Amount: order.Total})
	return rows
}
