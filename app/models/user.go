package models

// Validate checks register/login credentials.
func (c *Credentials) Validate() error {
	return validate.Struct(c)
}
