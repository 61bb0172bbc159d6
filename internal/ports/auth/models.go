package auth

// Claims representa la identidad extraída del token: el user id de
// Discord y el username que viaja de cortesía.
type Claims struct {
	UserID   string
	Username string
}
