package billing

import (
	"net/http"
	"os"

	"readian-backend/db"
	"readian-backend/models"
	"readian-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	session "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
)

func planPriceID(plan models.Plan) string {
	switch plan {
	case models.BasicPlan:
		return os.Getenv("STRIPE_BASIC_PRICE_ID")
	case models.PremiumPlan:
		return os.Getenv("STRIPE_PREMIUM_PRICE_ID")
	}
	return ""
}

// @Summary Create a Stripe Checkout session for a plan
// @Description Start a Stripe payment to subscribe to the BASIC or PREMIUM plan. Returns the Stripe session ID and URL for the frontend.
// @Tags billing
// @Accept json
// @Produce json
// @Param plan path string true "Plan to subscribe to (BASIC or PREMIUM)"
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId: ID of the Stripe Checkout session, url: Stripe Checkout URL"
// @Failure 400 {object} map[string]string "error: Invalid plan"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /billing/checkout/{plan} [post]
func CreateCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	plan := models.Plan(c.Param("plan"))
	priceID := planPriceID(plan)
	if priceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan, expected BASIC or PREMIUM"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Plan == plan && user.SubscriptionStatus == models.SubscriptionActive {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active subscription to this plan"})
		return
	}

	if user.StripeCustomerId != "" {
		// Make sure the customer still exists on Stripe
		if _, err := customer.Get(user.StripeCustomerId, nil); err != nil {
			user.StripeCustomerId = ""
		}
	}
	if user.StripeCustomerId == "" {
		custParams := &stripe.CustomerParams{
			Email: stripe.String(user.Email),
			Name:  stripe.String(user.UserName),
		}
		cust, err := customer.New(custParams)
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error creating Stripe customer in CreateCheckoutSession")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
			return
		}
		db.DB.Model(&user).Update("stripe_customer_id", cust.ID)
		user.StripeCustomerId = cust.ID
	}

	appURL := os.Getenv("APP_URL")
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(user.StripeCustomerId),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(appURL + "/subscribe/success"),
		CancelURL:         stripe.String(appURL + "/subscribe/cancel"),
		ClientReferenceID: stripe.String(string(plan)),
	}

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe session in CreateCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Stripe checkout session created")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// @Summary Cancel my subscription
// @Description Cancel the authenticated user's plan subscription at the end of the current period. Access remains until the paid period expires.
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription cancelled"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: No active subscription"
// @Failure 500 {object} map[string]string "error: Stripe error"
// @Router /billing/subscription [delete]
func CancelSubscription(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.SubscriptionStatus != models.SubscriptionActive || user.StripeCustomerId == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
		return
	}

	// Cancel every active Stripe subscription attached to this customer at
	// period end. The paid period keeps its access via the expiry timestamp.
	iter := stripeSubscription.List(&stripe.SubscriptionListParams{
		Customer: stripe.String(user.StripeCustomerId),
		Status:   stripe.String("active"),
	})
	for iter.Next() {
		sub := iter.Subscription()
		_, err := stripeSubscription.Update(sub.ID, &stripe.SubscriptionParams{
			CancelAtPeriodEnd: stripe.Bool(true),
		})
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error cancelling Stripe subscription")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error cancelling the subscription"})
			return
		}
	}
	if err := iter.Err(); err != nil {
		utils.LogErrorWithUser(userID, err, "Error listing Stripe subscriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error cancelling the subscription"})
		return
	}

	if err := db.DB.Model(&user).Update("subscription_status", models.SubscriptionCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating subscription: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription cancelled")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}

// @Summary Get my payment history
// @Description Retrieve the authenticated user's plan payments
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PlanPayment
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /billing/payments [get]
func GetMyPayments(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var payments []models.PlanPayment
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving payments: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// @Summary Get total revenue
// @Description Sum of all successful plan payments (admin only)
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64 "totalRevenue: amount in cents"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /billing/revenue [get]
func GetTotalRevenue(c *gin.Context) {
	var total int64
	if err := db.DB.Model(&models.PlanPayment{}).
		Where("status = ?", models.PaymentSucceeded).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing revenue: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalRevenue": total})
}
