package users

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"userhub/internal/auth"
)

// SeedSpec describes the dummy users the seed command generates.
type SeedSpec struct {
	Count    int    `yaml:"count"`
	Role     Role   `yaml:"role"`
	Password string `yaml:"password"`
}

func defaultSeedSpec() SeedSpec {
	return SeedSpec{Count: 100, Role: RoleUser, Password: auth.DefaultPassword}
}

// LoadSeedSpec reads a YAML seed description, falling back to the defaults
// for any field left unset. An empty path means all defaults.
func LoadSeedSpec(path string) (SeedSpec, error) {
	spec := defaultSeedSpec()
	if path == "" {
		return spec, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("read seed spec: %w", err)
	}
	var file SeedSpec
	if err := yaml.Unmarshal(data, &file); err != nil {
		return spec, fmt.Errorf("decode seed spec: %w", err)
	}
	if file.Count > 0 {
		spec.Count = file.Count
	}
	if file.Role != "" {
		if !file.Role.Valid() {
			return spec, fmt.Errorf("invalid seed role %q", file.Role)
		}
		spec.Role = file.Role
	}
	if file.Password != "" {
		spec.Password = file.Password
	}
	return spec, nil
}

// Seed appends spec.Count generated users to the store, ids continuing
// from the current maximum. Returns the new total.
func Seed(ctx context.Context, store Store, spec SeedSpec) (int, error) {
	list := store.Load(ctx)
	start := NextID(list)
	for i := 0; i < spec.Count; i++ {
		id := start + i
		list = append(list, User{
			ID:       id,
			Name:     fmt.Sprintf("User %d", id),
			Email:    fmt.Sprintf("user%d@example.com", id),
			Role:     spec.Role,
			Password: spec.Password,
		})
	}
	if err := store.Save(ctx, list); err != nil {
		return 0, fmt.Errorf("save seeded users: %w", err)
	}
	return len(list), nil
}
