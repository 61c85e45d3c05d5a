package account

import (
	"time"

	"github.com/janhq/translate-mock/internal/domain/quota"
)

// InvalidCredential is the reserved credential that is always rejected.
const InvalidCredential = "invalid"

// Account is the usage owner identified by a credential.
type Account struct {
	Credential string
	CreatedAt  time.Time
	Usage      *quota.Ledger
	// Billing is nil when character accounting is disabled.
	Billing *quota.Period
}

// Provisioning overrides the allowances of an account at creation time.
// Nil fields fall back to the registry defaults.
type Provisioning struct {
	CharacterLimit    *int64
	DocumentLimit     *int64
	TeamDocumentLimit *int64
}

// Defaults are the allowances of accounts without overrides.
type Defaults struct {
	CharacterLimit      int64
	DocumentLimit       int64
	BillingPeriodOffset time.Duration
}

// allowances applies the provisioning rules: character and document classes
// are on unless explicitly set to zero, team documents only when positive.
func (d Defaults) allowances(p Provisioning) []quota.Allowance {
	var out []quota.Allowance

	charLimit := d.CharacterLimit
	if p.CharacterLimit != nil {
		charLimit = *p.CharacterLimit
	}
	if p.CharacterLimit == nil || *p.CharacterLimit != 0 {
		out = append(out, quota.Allowance{Class: quota.ClassCharacter, Limit: charLimit})
	}

	docLimit := d.DocumentLimit
	if p.DocumentLimit != nil {
		docLimit = *p.DocumentLimit
	}
	if p.DocumentLimit == nil || *p.DocumentLimit != 0 {
		out = append(out, quota.Allowance{Class: quota.ClassDocument, Limit: docLimit})
	}

	if p.TeamDocumentLimit != nil && *p.TeamDocumentLimit > 0 {
		out = append(out, quota.Allowance{Class: quota.ClassTeamDocument, Limit: *p.TeamDocumentLimit})
	}
	return out
}
