package workflow

import (
	"sort"

	"foncier/internal/contract/models"
)

// Quorum is the configurable set of signatory roles whose presence triggers
// the DRAFT to SIGNED transition. Organizations with stricter rules add
// witness or authority roles at construction time; the logic never hard-codes
// a deployment's policy.
type Quorum struct {
	required map[models.PartyRole]bool
}

// NewQuorum builds a quorum over the given roles. With no roles it falls back
// to the default: one OWNER and one BENEFICIARY signature.
func NewQuorum(roles ...models.PartyRole) Quorum {
	required := make(map[models.PartyRole]bool, len(roles))
	for _, r := range roles {
		if r.IsValid() {
			required[r] = true
		}
	}
	if len(required) == 0 {
		required[models.RoleOwner] = true
		required[models.RoleBeneficiary] = true
	}
	return Quorum{required: required}
}

// Satisfied reports whether every required role appears among the collected
// signatures. Duplicate signatures by the same role are kept in the record
// but count once here: presence of distinct roles is what matters.
func (q Quorum) Satisfied(signatures []models.PartySignature) bool {
	seen := make(map[models.PartyRole]bool, len(signatures))
	for _, sig := range signatures {
		seen[sig.Role] = true
	}
	for role := range q.required {
		if !seen[role] {
			return false
		}
	}
	return true
}

// RequiredRoles lists the quorum's roles in stable order.
func (q Quorum) RequiredRoles() []models.PartyRole {
	roles := make([]models.PartyRole, 0, len(q.required))
	for r := range q.required {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
