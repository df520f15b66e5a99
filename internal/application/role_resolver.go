package application

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/oksasatya/go-hrm-service/internal/domain/entity"
	repo "github.com/oksasatya/go-hrm-service/internal/domain/repository"
)

// fallbackRole is assigned when neither the configured default nor any
// catalogued role is usable.
const fallbackRole = "EMPLOYEE"

// NormalizeRole canonicalises a role name: trim, spaces and underscores to
// hyphens, upper-case, and fold SUPERADMIN spellings. Empty input normalizes
// to the empty string, not an error.
func NormalizeRole(raw string) string {
	r := strings.TrimSpace(raw)
	if r == "" {
		return ""
	}
	r = strings.ReplaceAll(r, " ", "-")
	r = strings.ReplaceAll(r, "_", "-")
	r = strings.ToUpper(r)
	if r == "SUPERADMIN" {
		r = "SUPER-ADMIN"
	}
	return r
}

// NormalizeRoles maps NormalizeRole over a list, dropping empty entries.
func NormalizeRoles(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if n := NormalizeRole(r); n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// RoleResolver decides which role newly registered users receive.
type RoleResolver struct {
	Roles       repo.RoleRepository
	DefaultRole string // raw configured preference, normalized on use
}

// ResolveDefault returns the role every new registration is assigned:
// the configured default when it exists in the catalogue, else EMPLOYEE when
// present, else the first catalogued role by name order, creating EMPLOYEE
// only on an empty catalogue. Every registration therefore ends up with
// exactly one role.
func (r *RoleResolver) ResolveDefault(ctx context.Context) (*entity.Role, error) {
	if want := NormalizeRole(r.DefaultRole); want != "" {
		role, err := r.Roles.GetByName(ctx, want)
		if err == nil {
			return role, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}
	names, err := r.Roles.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(names, fallbackRole) {
		return r.Roles.GetByName(ctx, fallbackRole)
	}
	if len(names) > 0 {
		return r.Roles.GetByName(ctx, names[0])
	}
	return r.Roles.Ensure(ctx, fallbackRole)
}
