package mailsmodels

import (
	"fmt"
	"readian-backend/utils"
)

func ConfirmEmail(email string, code string) {
	subject := "Subject: Welcome to Readian \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #1D3557; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Thanks for joining Readian</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">To finish signing up, confirm your email with this code:</td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p style="font-weight: bold; color: #1D3557; text-align:center;">%s</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, code)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}
