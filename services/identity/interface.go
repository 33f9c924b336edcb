package identity

import "worknook/models"

// RegisterClientInput carries the fields for client registration.
type RegisterClientInput struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Password string
}

// RegisterWorkerInput carries the fields for worker registration. The ID
// document arrives as a local temp file saved by the HTTP layer; the service
// hands it to the file intake and stores the returned reference.
type RegisterWorkerInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	ServiceType  string
	Experience   string
	Bio          string
	Password     string
	DocumentPath string
}

// AuthSession is returned by registration and login.
type AuthSession struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ProfileView is the authenticated account view, with the worker profile
// attached for worker accounts.
type ProfileView struct {
	models.User
	Worker *models.Worker `json:"worker,omitempty"`
}

// ProfileUpdate patches the authenticated account. Empty fields are no-ops.
// Bio, Experience and ServiceType only apply to worker accounts.
type ProfileUpdate struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	ServiceType string `json:"service_type"`
	Experience  string `json:"experience"`
	Bio         string `json:"bio"`
}

// IdentityService issues session tokens and resolves authenticated
// principals. Roles are immutable attributes assigned at registration.
type IdentityService interface {
	RegisterClient(input RegisterClientInput) (*AuthSession, error)
	RegisterWorker(input RegisterWorkerInput) (*AuthSession, error)
	Authenticate(email, password string) (*AuthSession, error)
	// ResolvePrincipal turns an account id and role claim into a typed
	// principal, verifying the account still exists.
	ResolvePrincipal(accountID, role string) (models.Principal, error)
	GetProfile(p models.Principal) (*ProfileView, error)
	UpdateProfile(p models.Principal, update ProfileUpdate) (*ProfileView, error)
}
