package mailer

import "fmt"

func renderPasswordRecovery(name, resetLink string) string {
	return fmt.Sprintf(`Olá, %s!

Recebemos um pedido para redefinir a sua senha no DoeVida.

Para criar uma nova senha, acesse o link abaixo. Ele expira em 30 minutos:

%s

Se você não pediu a redefinição, ignore esta mensagem.

Equipe DoeVida
`, name, resetLink)
}

func renderParticipationConfirmation(name, campaignTitle, location string) string {
	return fmt.Sprintf(`Olá, %s!

Sua participação na campanha "%s" foi confirmada.

Local: %s

Cada doação pode salvar até quatro vidas. Obrigado por participar!

Equipe DoeVida
`, name, campaignTitle, location)
}
