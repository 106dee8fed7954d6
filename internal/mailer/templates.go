package mailer

import "fmt"

// HTML bodies for every workflow transition that notifies a member.

func ApplicationReceived(firstName string) (string, string) {
	subject := "We received your OWow Club application"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thanks for applying to OWow Club. Our membership committee will review your
application and get back to you soon.</p>
<p>— The OWow Club team</p>`, firstName)
	return subject, body
}

func ApplicationAccepted(registrationLink string) (string, string) {
	subject := "Welcome to OWow Club!"
	body := fmt.Sprintf(`<p>Congratulations — your application has been accepted.</p>
<p>Finish setting up your account here:</p>
<p><a href="%s">%s</a></p>
<p>— The OWow Club team</p>`, registrationLink, registrationLink)
	return subject, body
}

func ApplicationRejected(firstName string) (string, string) {
	subject := "Your OWow Club application"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thank you for your interest in OWow Club. Unfortunately we are unable to
offer you membership at this time.</p>
<p>— The OWow Club team</p>`, firstName)
	return subject, body
}

func PasswordReset(resetLink string) (string, string) {
	subject := "Reset your OWow Club password"
	body := fmt.Sprintf(`<p>We received a request to reset your password.</p>
<p>The link below is valid for one hour:</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can ignore this email.</p>`, resetLink, resetLink)
	return subject, body
}

func EventInvite(eventTitle, inviteLink string) (string, string) {
	subject := fmt.Sprintf("You're invited: %s", eventTitle)
	body := fmt.Sprintf(`<p>You have been invited to <strong>%s</strong>.</p>
<p>This invite expires in 48 hours:</p>
<p><a href="%s">%s</a></p>`, eventTitle, inviteLink, inviteLink)
	return subject, body
}

func EventJoined(eventTitle string) (string, string) {
	subject := fmt.Sprintf("You're in: %s", eventTitle)
	body := fmt.Sprintf(`<p>You are confirmed for <strong>%s</strong>. See you there!</p>`, eventTitle)
	return subject, body
}

func Announcement(subject, message string) (string, string) {
	body := fmt.Sprintf(`<p>%s</p><p>— The OWow Club team</p>`, message)
	return subject, body
}
