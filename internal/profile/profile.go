// Package profile persists the singleton user profile. Its lifecycle is
// independent of the ledger: profile data has no relationship to
// transactions.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/finanza/internal/logging"

	"gopkg.in/yaml.v3"
)

// UserProfile holds the five profile fields. All are plain strings with
// defined defaults when unset.
type UserProfile struct {
	Name     string `yaml:"name" json:"name"`
	JobTitle string `yaml:"job_title" json:"job_title"`
	Location string `yaml:"location" json:"location"`
	Phone    string `yaml:"phone" json:"phone"`
	Email    string `yaml:"email" json:"email"`
}

// Default profile field values.
const (
	DefaultName  = "Guest User"
	DefaultField = "Not Set"
)

// DefaultProfile returns a profile with every field at its default.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:     DefaultName,
		JobTitle: DefaultField,
		Location: DefaultField,
		Phone:    DefaultField,
		Email:    DefaultField,
	}
}

// withDefaults fills any unset field with its default value.
func (p UserProfile) withDefaults() UserProfile {
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.JobTitle == "" {
		p.JobTitle = DefaultField
	}
	if p.Location == "" {
		p.Location = DefaultField
	}
	if p.Phone == "" {
		p.Phone = DefaultField
	}
	if p.Email == "" {
		p.Email = DefaultField
	}
	return p
}

// Store persists the user profile as a YAML file.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore creates a profile store backed by the given file path.
func NewStore(path string, logger logging.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the profile from disk. A missing file is not an error: the
// default profile is returned.
func (s *Store) Load() (UserProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Profile file not found, using defaults",
				logging.Field{Key: "path", Value: s.path})
			return DefaultProfile(), nil
		}
		return DefaultProfile(), fmt.Errorf("read profile file: %w", err)
	}

	var p UserProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultProfile(), fmt.Errorf("parse profile file: %w", err)
	}
	return p.withDefaults(), nil
}

// Save writes the profile to disk, creating the directory if necessary.
func (s *Store) Save(p UserProfile) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}

	data, err := yaml.Marshal(p.withDefaults())
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write profile file: %w", err)
	}

	s.logger.Info("Profile saved", logging.Field{Key: "path", Value: s.path})
	return nil
}
