package mailsmodels

import (
	"fmt"
	"readian-backend/utils"
)

func SubscriptionReceipt(email string, plan string, amountCents int) {
	subject := "Subject: Your Readian subscription \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #1D3557; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Subscription confirmed</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Your %s plan is now active. Amount charged: %.2f&euro;.</td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Happy reading!</td>
				</tr>
			</tbody>
		</table>
	</div>
`, plan, float64(amountCents)/100)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}
