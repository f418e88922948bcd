package auth

// AdminPolicy decides administrator status from a user's email.
// Role is never stored; it is recomputed for each request.
type AdminPolicy struct {
	emails map[string]struct{}
}

func NewAdminPolicy(emails []string) AdminPolicy {
	p := AdminPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		p.emails[e] = struct{}{}
	}

	return p
}

// IsAdmin compares emails case-sensitively, as they are stored.
func (p AdminPolicy) IsAdmin(email string) bool {
	_, ok := p.emails[email]
	return ok
}
