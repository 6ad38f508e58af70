package utils

import (
	"fmt"
	"html"
)

func SendWelcomeEmail(to, username string) error {
	subject := "🎁 Bienvenue sur Liste de Cadeaux !"

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="fr">
	<head>
	<meta charset="UTF-8" />
	<title>Bienvenue</title>
	</head>
	<body style="font-family: 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333333;">
		<div style="background: linear-gradient(135deg, #c41e3a 0%%, #165b33 100%%); padding: 30px; text-align: center;">
			<h1 style="color: #ffffff; margin: 0;">🎄 Liste de Cadeaux</h1>
		</div>
		<div style="padding: 30px; background: #f9f9f9;">
			<h2 style="color: #333;">Bonjour %s !</h2>
			<p style="font-size: 15px; color: #555;">
				Votre compte est prêt. Créez une famille, invitez vos proches et
				commencez à remplir votre liste de cadeaux. 🎁
			</p>
			<p style="font-size: 12px; color: #999;">
				Vos proches pourront participer à vos cadeaux sans jamais vous gâcher la surprise.
			</p>
		</div>
	</body>
	</html>
	`, html.EscapeString(username))

	return SendEmail(to, subject, body)
}
