package utils

import (
	"fmt"
	"html"
)

// SendJoinRequestEmail notifies a family creator that someone asked to join
// their public family. Best effort only, callers run it in a goroutine.
func SendJoinRequestEmail(to, familyName, requesterName, message string) error {
	subject := fmt.Sprintf("Nouvelle demande d'adhésion pour '%s'", familyName)

	messageBlock := ""
	if message != "" {
		messageBlock = fmt.Sprintf(`
			<div style="background: #f8fdfa; border: 1px solid #d7ece4; border-radius: 8px; padding: 12px 14px; margin: 16px 0;">
				<p style="margin: 0; font-size: 13px; color: #444444; font-style: italic;">« %s »</p>
			</div>`, html.EscapeString(message))
	}

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="fr">
	<head>
	<meta charset="UTF-8" />
	<title>Demande d'adhésion</title>
	</head>
	<body style="font-family: 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333333;">
		<div style="background-color: #165b33; padding: 24px; text-align: center;">
			<h1 style="color: #ffffff; margin: 0; font-size: 18px;">🎄 Liste de Cadeaux</h1>
		</div>
		<div style="padding: 24px; background: #f9f9f9;">
			<p style="font-size: 15px; color: #555;">
				<strong>%s</strong> souhaite rejoindre votre famille <strong>%s</strong>.
			</p>
			%s
			<p style="font-size: 14px; color: #777;">
				Connectez-vous pour accepter ou refuser cette demande.
			</p>
		</div>
	</body>
	</html>
	`, html.EscapeString(requesterName), html.EscapeString(familyName), messageBlock)

	return SendEmail(to, subject, body)
}
