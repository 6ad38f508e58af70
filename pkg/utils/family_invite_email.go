package utils

import (
	"fmt"
)

func SendFamilyInviteEmail(to, familyName, inviteURL string) error {
	subject := fmt.Sprintf("🎄 Invitation à rejoindre la famille '%s'", familyName)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="fr">
	<head>
	<meta charset="UTF-8" />
	<title>Invitation</title>
	</head>
	<body style="font-family: 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333333;">
		<div style="background: linear-gradient(135deg, #c41e3a 0%%, #165b33 100%%); padding: 30px; text-align: center;">
			<h1 style="color: #ffffff; margin: 0;">🎄 Liste de Cadeaux</h1>
		</div>
		<div style="padding: 30px; background: #f9f9f9;">
			<h2 style="color: #333;">Vous êtes invité(e) !</h2>
			<p style="font-size: 16px; color: #555;">
				Vous avez été invité(e) à rejoindre la famille <strong>%s</strong>
				pour partager vos listes de cadeaux ! 🎁
			</p>
			<div style="text-align: center; margin: 30px 0;">
				<a href="%s"
				   style="background: #c41e3a; color: #ffffff; padding: 15px 30px;
				          text-decoration: none; border-radius: 5px; font-weight: bold;
				          display: inline-block;">
					Accepter l'invitation
				</a>
			</div>
			<p style="font-size: 14px; color: #777;">
				Si le bouton ne fonctionne pas, copiez ce lien dans votre navigateur :<br>
				<a href="%s" style="color: #c41e3a;">%s</a>
			</p>
			<hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
			<p style="font-size: 12px; color: #999; text-align: center;">
				Vous recevez cet email car quelqu'un vous a invité sur Liste de Cadeaux.<br>
				Si vous n'attendez pas cette invitation, vous pouvez ignorer cet email.
			</p>
		</div>
	</body>
	</html>
	`, familyName, inviteURL, inviteURL, inviteURL)

	return SendEmail(to, subject, body)
}
