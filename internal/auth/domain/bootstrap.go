package domain

type BootstrapData struct {
	Email    string
	Password string
	Username string
	FullName string
}
