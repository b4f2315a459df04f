package models

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Privileges that can be granted on an ingested table. GRANT does not take
// bind parameters, so the role is matched against this list instead of being
// interpolated from user input.
var allowedPrivileges = map[string]struct{}{
	"SELECT": {},
	"INSERT": {},
	"UPDATE": {},
	"DELETE": {},
	"ALL":    {},
}

type RoleGrant struct {
	Privilege string
	Grantee   string
	Table     StagedTableRef
}

func (g RoleGrant) Validate() error {
	if _, ok := allowedPrivileges[strings.ToUpper(g.Privilege)]; !ok {
		return errors.Wrapf(BadParameterError, "unsupported privilege %q", g.Privilege)
	}
	if err := ValidateIdentifier(g.Grantee); err != nil {
		return errors.Wrap(err, "invalid grantee")
	}
	if err := ValidateIdentifier(g.Table.Table); err != nil {
		return errors.Wrap(err, "invalid table name")
	}
	return nil
}

// NormalizedPrivilege returns the canonical upper-case privilege keyword.
func (g RoleGrant) NormalizedPrivilege() string {
	return strings.ToUpper(g.Privilege)
}
