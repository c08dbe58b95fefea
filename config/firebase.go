package config

// FirebaseEnabled reports whether FCM push delivery is configured.
func (c *Config) FirebaseEnabled() bool {
	return c.FirebaseCredentialsFile != ""
}

// EmailEnabled reports whether SendGrid email delivery is configured.
func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != ""
}
