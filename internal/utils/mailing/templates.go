package mailing

import (
	"fmt"
	"html"
)

func WelcomeEmail(username string, appURL string) (string, string) {
	if username == "" {
		username = "there"
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to Dishcovery! Start sharing your recipes at <a href=\"%s\">%s</a>.</p>",
		html.EscapeString(username), html.EscapeString(appURL), html.EscapeString(appURL),
	)
	return "Welcome to Dishcovery", body
}

func RecipeApprovedEmail(title string) (string, string) {
	body := fmt.Sprintf(
		"<p>Good news! Your recipe <b>%s</b> has been approved and is now visible to everyone.</p>",
		html.EscapeString(title),
	)
	return "Your recipe was approved", body
}

func RecipeRejectedEmail(title string) (string, string) {
	body := fmt.Sprintf(
		"<p>Your recipe <b>%s</b> was not approved by our moderators and has been removed.</p>",
		html.EscapeString(title),
	)
	return "Your recipe was not approved", body
}
