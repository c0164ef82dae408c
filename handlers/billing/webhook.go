package billing

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"readian-backend/db"
	"readian-backend/models"
	"readian-backend/utils"
	mailsmodels "readian-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret is not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stripe signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		handleCheckoutSessionCompleted(c, event)
	case "invoice.payment_succeeded":
		handleInvoicePaymentSucceeded(c, event)
	case "invoice.payment_failed":
		handleInvoicePaymentFailed(c, event)
	case "customer.subscription.deleted":
		handleSubscriptionDeleted(c, event)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
	}
}

func handleCheckoutSessionCompleted(c *gin.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing CheckoutSession"})
		return
	}

	if session.Customer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer missing in the session"})
		return
	}

	plan := models.Plan(session.ClientReferenceID)
	if plan != models.BasicPlan && plan != models.PremiumPlan {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan in ClientReferenceID"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "stripe_customer_id = ?", session.Customer.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user for this customer"})
		return
	}

	// Checkout sessions for subscriptions are paid on completion; grant a
	// month of access now, invoice events extend it on renewal.
	expiry := time.Now().AddDate(0, 1, 0)
	updates := map[string]interface{}{
		"plan":                    plan,
		"subscription_status":     models.SubscriptionActive,
		"subscription_expires_at": &expiry,
	}

	if session.PaymentStatus != "paid" {
		updates["subscription_status"] = models.SubscriptionInactive
		updates["subscription_expires_at"] = nil
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the subscription"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "Plan subscription activated via checkout.session.completed")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription updated"})
}

// recordPlanPayment writes one payment row per Stripe invoice, skipping
// duplicate webhook deliveries.
func recordPlanPayment(user models.User, invoiceID string, amount int, currency string, status models.PaymentStatus) error {
	if invoiceID != "" {
		var existing models.PlanPayment
		if err := db.DB.First(&existing, "stripe_invoice_id = ?", invoiceID).Error; err == nil {
			return nil
		}
	}

	payment := models.PlanPayment{
		UserID:          user.ID,
		Plan:            user.Plan,
		Amount:          amount,
		Currency:        currency,
		Status:          status,
		StripeInvoiceId: invoiceID,
	}

	return db.DB.Create(&payment).Error
}

func handleInvoicePaymentSucceeded(c *gin.Context, event stripe.Event) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Invoice"})
		return
	}

	if invoice.Customer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer missing in the invoice"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "stripe_customer_id = ?", invoice.Customer.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user for this customer"})
		return
	}

	if err := recordPlanPayment(user, invoice.ID, int(invoice.AmountPaid), string(invoice.Currency), models.PaymentSucceeded); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording the payment"})
		return
	}

	// Renewal: push the expiry a month forward from now.
	expiry := time.Now().AddDate(0, 1, 0)
	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"subscription_status":     models.SubscriptionActive,
		"subscription_expires_at": &expiry,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the subscription"})
		return
	}

	mailsmodels.SubscriptionReceipt(user.Email, string(user.Plan), int(invoice.AmountPaid))

	utils.LogSuccessWithUser(user.ID, "Plan subscription renewed via invoice.payment_succeeded")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription renewed"})
}

func handleInvoicePaymentFailed(c *gin.Context, event stripe.Event) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Invoice"})
		return
	}

	if invoice.Customer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer missing in the invoice"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "stripe_customer_id = ?", invoice.Customer.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user for this customer"})
		return
	}

	if err := recordPlanPayment(user, invoice.ID, int(invoice.AmountDue), string(invoice.Currency), models.PaymentFailed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording the payment"})
		return
	}

	// The expiry timestamp keeps gating access; the flag records why the
	// renewal stopped.
	if err := db.DB.Model(&user).Update("subscription_status", models.SubscriptionExpired).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the subscription"})
		return
	}

	utils.LogErrorWithUser(user.ID, nil, "Plan payment failed via invoice.payment_failed")
	c.JSON(http.StatusOK, gin.H{"message": "Payment failure recorded"})
}

func handleSubscriptionDeleted(c *gin.Context, event stripe.Event) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Subscription"})
		return
	}

	if sub.Customer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer missing in the subscription"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "stripe_customer_id = ?", sub.Customer.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user for this customer"})
		return
	}

	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"plan":                    models.FreePlan,
		"subscription_status":     models.SubscriptionExpired,
		"subscription_expires_at": nil,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error downgrading the user"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "User downgraded via customer.subscription.deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription removed"})
}
