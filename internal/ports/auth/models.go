package auth

// Claims representa la identidad extraída del token del proveedor.
type Claims struct {
	UserID      string
	Email       string
	DisplayName string
}
