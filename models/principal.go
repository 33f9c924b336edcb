package models

// Principal is an authenticated caller. Exactly two implementations exist,
// one per role, so role-specific operations can demand the right one at
// compile time instead of branching on a role string.
type Principal interface {
	PrincipalID() string
	Role() string
}

// ClientPrincipal is an authenticated client account.
type ClientPrincipal struct {
	ID string
}

func (p ClientPrincipal) PrincipalID() string { return p.ID }
func (p ClientPrincipal) Role() string        { return RoleClient }

// WorkerPrincipal is an authenticated worker account. ID is the account id;
// the worker profile is looked up from it where needed.
type WorkerPrincipal struct {
	ID string
}

func (p WorkerPrincipal) PrincipalID() string { return p.ID }
func (p WorkerPrincipal) Role() string        { return RoleWorker }
